// Package fheconcat is string concatenation, substring extraction and
// repetition (C7 of the design). Grounded on original_source's
// server_key/add.rs, substring.rs and repeat.rs.
package fheconcat

import (
	"errors"

	"github.com/cryptlab/fhestrings/fhebyte"
	"github.com/cryptlab/fhestrings/fhepad"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/oracle"
)

// ErrOutOfRange is returned by the clear-index substring path when the
// requested range can be rejected without touching the oracle at all:
// the same fast, non-oblivious check substring.rs performs before ever
// calling into the server key.
var ErrOutOfRange = errors.New("fheconcat: substring range out of content capacity")

// combinedPadding resolves the result padding of concatenating a value
// with padding pa followed by one with padding pb, per spec.md §4.7's
// padding-combination table (None+None=None, None+Final=Final,
// Initial+None=Initial, Initial+Final=InitialAndFinal, else Anywhere).
func combinedPadding(pa, pb fhestring.Padding) fhestring.Padding {
	switch {
	case pa == fhestring.PadNone && pb == fhestring.PadNone:
		return fhestring.PadNone
	case pa == fhestring.PadNone && pb == fhestring.PadFinal:
		return fhestring.PadFinal
	case pa == fhestring.PadInitial && pb == fhestring.PadNone:
		return fhestring.PadInitial
	case pa == fhestring.PadInitial && pb == fhestring.PadFinal:
		return fhestring.PadInitialAndFinal
	default:
		return fhestring.PadAnywhere
	}
}

// Concat appends s2's content to s1's, consuming neither (both are cloned
// into the result per the container's no-aliasing rule).
func Concat(ops oracle.ServerOps, s1, s2 fhestring.FheString) fhestring.FheString {
	content := append(s1.CloneContent(), s2.CloneContent()...)
	length := fhestring.Add(ops, s1.Length, s2.Length)
	return fhestring.New(content, combinedPadding(s1.Padding, s2.Padding), length)
}

// ConcatClear appends a public plaintext suffix to s1.
func ConcatClear(ops oracle.ServerOps, s1 fhestring.FheString, s2 string) fhestring.FheString {
	if s2 == "" {
		return fhestring.New(s1.CloneContent(), s1.Padding, s1.Length)
	}
	content := s1.CloneContent()
	for _, b := range []byte(s2) {
		content = append(content, ops.TrivialEnc(uint64(b)))
	}
	length := fhestring.AddScalar(ops, s1.Length, len(s2))
	padding := s1.Padding
	if padding != fhestring.PadNone && padding != fhestring.PadInitial {
		padding = fhestring.PadAnywhere
	}
	return fhestring.New(content, padding, length)
}

// ConcatChar appends a single character, clear or encrypted, to s1.
func ConcatChar(ops oracle.ServerOps, s1 fhestring.FheString, c oracle.CT) fhestring.FheString {
	content := append(s1.CloneContent(), c)
	length := fhestring.AddScalar(ops, s1.Length, 1)
	padding := s1.Padding
	if padding != fhestring.PadNone && padding != fhestring.PadInitial {
		padding = fhestring.PadAnywhere
	}
	return fhestring.New(content, padding, length)
}

// SubstringClear extracts s[start:end] for clear start/end. It returns
// ErrOutOfRange immediately when the range cannot possibly fit inside the
// content capacity, or, when s's length is clear, inside that length (a
// non-oblivious, public-metadata check, same as substring.rs's own fast
// path); otherwise it returns (ok, value) where ok
// is an encrypted boolean telling the caller, only after decryption,
// whether the range was actually in bounds once the true (possibly
// encrypted) length is taken into account.
func SubstringClear(ops oracle.ServerOps, s fhestring.FheString, start, end int) (ok oracle.CT, result fhestring.FheString, err error) {
	if end < start || end > len(s.Content) {
		return nil, fhestring.FheString{}, ErrOutOfRange
	}
	rangeIncluded := fhebyte.True(ops)
	if n, isClear := s.Length.Clear(); isClear {
		if end > n {
			return nil, fhestring.FheString{}, ErrOutOfRange
		}
	} else {
		ec, _ := s.Length.Encrypted()
		rangeIncluded = ops.ScalarGe(ec, uint64(end))
	}
	final := pushToEnd(ops, s)
	content := make([]oracle.CT, end-start)
	copy(content, final.Content[start:end])
	return rangeIncluded, fhestring.New(content, fhestring.PadNone, fhestring.ClearLength(end-start)), nil
}

// SubstringEncrypted extracts s[start:end] for encrypted start/end. ok is
// an encrypted boolean: 1 iff start <= end <= len(s). result is always the
// best-effort intersection of [start,end) with s's content, meaningful
// only when ok later decrypts to 1.
func SubstringEncrypted(ops oracle.ServerOps, s fhestring.FheString, start, end oracle.CT) (ok oracle.CT, result fhestring.FheString) {
	endIncluded := ops.Le(end, s.Length.ToEncrypted(ops))
	startBeforeEnd := ops.Le(start, end)
	rangeIncluded := ops.And(endIncluded, startBeforeEnd)

	final := pushToEnd(ops, s)
	n := len(final.Content)
	content := make([]oracle.CT, n)
	for i, c := range final.Content {
		beforeEnd := ops.Lt(ops.TrivialEnc(uint64(i)), end)
		afterStart := ops.Le(start, ops.TrivialEnc(uint64(i)))
		content[i] = ops.Cmux(ops.And(beforeEnd, afterStart), c, ops.TrivialEnc(0))
	}
	resultLength := fhestring.EncryptedLength(fhebyte.SaturatingSub(ops, end, start))
	return rangeIncluded, fhestring.New(content, fhestring.PadAnywhere, resultLength)
}

func pushToEnd(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	return fhepad.PushPaddingToEnd(ops, s)
}

// RepeatClear returns s concatenated to itself count times, for a public
// count.
func RepeatClear(ops oracle.ServerOps, s fhestring.FheString, count int) fhestring.FheString {
	if count <= 0 {
		return fhestring.New(nil, fhestring.PadNone, fhestring.ClearLength(0))
	}
	result := fhestring.New(s.CloneContent(), s.Padding, s.Length)
	for i := 1; i < count; i++ {
		result = Concat(ops, result, s)
	}
	return result
}

// RepeatEncrypted returns s concatenated to itself an encrypted count of
// times, up to maxRepeat (a public upper bound on how large the result
// content vector may grow, since the content capacity of an FheString
// must be fixed before any ciphertext arithmetic). Positions beyond the
// true count*len(s) are obliviously zeroed.
func RepeatEncrypted(ops oracle.ServerOps, s fhestring.FheString, count oracle.CT, maxRepeat int) fhestring.FheString {
	unitLen := len(s.Content)
	capacity := unitLen * maxRepeat
	content := make([]oracle.CT, capacity)
	for rep := 0; rep < maxRepeat; rep++ {
		repActive := ops.Lt(ops.TrivialEnc(uint64(rep)), count)
		for i, c := range s.CloneContent() {
			content[rep*unitLen+i] = ops.Cmux(repActive, c, ops.TrivialEnc(0))
		}
	}
	resultLength := fhestring.MulByRadix(ops, s.Length, count)
	return fhestring.New(content, fhestring.PadAnywhere, resultLength)
}
