// Package fhesearch is the find/rfind/contains/starts-with/ends-with
// family (C5 of the design), plus the supplemented strip-prefix and
// strip-suffix accessors. Everything here is a thin, named entry point
// over fhepattern.Pattern's own FindIn/RfindIn/IsPrefixOfString/
// IsContainedIn — the point of this package is the public, documented
// surface, not new algorithms. Grounded on original_source's
// server_key/find.rs, starts_with.rs, ends_with.rs and strip.rs.
package fhesearch

import (
	"github.com/cryptlab/fhestrings/fhebyte"
	"github.com/cryptlab/fhestrings/fhepad"
	"github.com/cryptlab/fhestrings/fhepattern"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/oracle"
)

// FindEmptyPattern implements find's empty-pattern convention: an empty
// needle is considered to occur at every inter-byte gap, including start
// itself, so find simply reports a match there without scanning.
func FindEmptyPattern(ops oracle.ServerOps, start oracle.CT) (found, index oracle.CT) {
	return fhebyte.True(ops), start
}

// RfindEmptyPattern mirrors FindEmptyPattern for the reverse direction: an
// empty needle's rightmost occurrence sits at len(s).
func RfindEmptyPattern(ops oracle.ServerOps, s fhestring.FheString) (found, index oracle.CT) {
	return fhebyte.True(ops), s.Length.ToEncrypted(ops)
}

// Find returns (found, index) of the first occurrence of pattern in s.
// index is meaningless when found decrypts to 0.
func Find(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) (found, index oracle.CT) {
	if fhepattern.IsClearEmpty(pattern) {
		return FindEmptyPattern(ops, ops.TrivialEnc(0))
	}
	return pattern.FindIn(ops, s)
}

// Rfind returns (found, index) of the last occurrence of pattern in s.
func Rfind(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) (found, index oracle.CT) {
	if fhepattern.IsClearEmpty(pattern) {
		return RfindEmptyPattern(ops, s)
	}
	return pattern.RfindIn(ops, s)
}

// Contains reports whether pattern occurs anywhere in s.
func Contains(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) oracle.CT {
	return pattern.IsContainedIn(ops, s)
}

// StartsWith reports whether pattern is a prefix of s.
func StartsWith(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) oracle.CT {
	return pattern.IsPrefixOfString(ops, s)
}

// EndsWith reports whether pattern is a suffix of s. It reduces to
// StartsWith over both operands reversed: ends_with.rs performs this same
// reduction via reverse_string_content rather than a dedicated suffix
// scan.
func EndsWith(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) oracle.CT {
	reversedS := reverseString(ops, s)
	switch p := pattern.(type) {
	case fhepattern.EncryptedString:
		reversedPattern := fhepattern.NewEncryptedString(reverseString(ops, p.Value))
		return reversedPattern.IsPrefixOfString(ops, reversedS)
	case fhepattern.ClearString:
		reversedPattern := fhepattern.NewClearString(reverseClear(p.Value))
		return reversedPattern.IsPrefixOfString(ops, reversedS)
	default:
		return pattern.IsPrefixOfString(ops, reversedS)
	}
}

func reverseClear(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// reverseString returns s with its non-null content reversed and any nulls
// leading it (PadInitial padding), so prefix logic applied to the reversal
// behaves as suffix logic on the original.
func reverseString(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	unpadded := fhepad.PushPaddingToEnd(ops, s)
	n := len(unpadded.Content)
	content := make([]oracle.CT, n)
	for i, c := range unpadded.Content {
		content[n-1-i] = c
	}
	return fhestring.New(content, fhestring.PadInitial, unpadded.Length)
}

// StripPrefix removes pattern from the front of s if present. It returns
// (stripped bool-CT, result). Input whose padding may put nulls before the
// first true byte (Initial, InitialAndFinal, Anywhere) is first compacted
// with fhepad.PushPaddingToEnd, so the shift starts at the true first byte.
// The result is tagged PadInitialAndFinal. When stripped decrypts to 0,
// result holds s's bytes and length with nothing removed: callers that
// only care about the stripped string should cmux result against s.CloneContent() themselves
// using stripped, the same way the original tracks strip success and
// content in a single pair rather than threading an Option.
//
// This corrects the original's strip_encrypted_prefix, which leaves the
// stripped bytes in place and only relabels the padding/length fields
// (relying on downstream consumers to never read the stale bytes). That
// is fragile the moment any caller inspects Content directly instead of
// going through a length-aware accessor, so here the bytes are actually
// shifted out, at the cost of one extra oblivious rotation.
func StripPrefix(ops oracle.ServerOps, s fhestring.FheString, prefix fhepattern.Pattern) (oracle.CT, fhestring.FheString) {
	if s.Padding != fhestring.PadNone && s.Padding != fhestring.PadFinal {
		s = fhepad.PushPaddingToEnd(ops, s)
	}
	matches := prefix.IsPrefixOfString(ops, s)
	prefixLen := patternLength(ops, prefix)
	shifted := shiftLeftBy(ops, s.CloneContent(), prefixLen)
	content := make([]oracle.CT, len(s.Content))
	for i := range content {
		content[i] = ops.Cmux(matches, shifted[i], s.Content[i])
	}
	newLength := fhestring.EncryptedLength(
		ops.Cmux(matches, fhebyte.SaturatingSub(ops, s.Length.ToEncrypted(ops), prefixLen), s.Length.ToEncrypted(ops)),
	)
	return matches, fhestring.New(content, fhestring.PadInitialAndFinal, newLength)
}

// StripSuffix mirrors StripPrefix at the tail end of s. strippedReversed
// carries its non-null run at the front (nulls, if any, trail it); once
// un-reversed back into s's orientation those nulls lead instead, so the
// result is tagged PadInitial, not PadFinal.
func StripSuffix(ops oracle.ServerOps, s fhestring.FheString, suffix fhepattern.Pattern) (oracle.CT, fhestring.FheString) {
	reversedS := reverseString(ops, s)
	matches, strippedReversed := StripPrefix(ops, reversedS, reversedPattern(ops, suffix))
	n := len(strippedReversed.Content)
	content := make([]oracle.CT, n)
	for i, c := range strippedReversed.Content {
		content[n-1-i] = c
	}
	return matches, fhestring.New(content, fhestring.PadInitial, strippedReversed.Length)
}

func reversedPattern(ops oracle.ServerOps, p fhepattern.Pattern) fhepattern.Pattern {
	switch v := p.(type) {
	case fhepattern.EncryptedString:
		return fhepattern.NewEncryptedString(reverseString(ops, v.Value))
	case fhepattern.ClearString:
		return fhepattern.NewClearString(reverseClear(v.Value))
	default:
		return p
	}
}

func patternLength(ops oracle.ServerOps, p fhepattern.Pattern) oracle.CT {
	return p.Length(ops)
}

// shiftLeftBy obliviously rotates content left by an encrypted amount and
// zero-fills the vacated tail, the shift-not-rotate variant of fhepad's
// rotate helpers: bytes shifted past the end are discarded rather than
// wrapping to the front.
func shiftLeftBy(ops oracle.ServerOps, content []oracle.CT, amount oracle.CT) []oracle.CT {
	n := len(content)
	out := make([]oracle.CT, n)
	copy(out, content)
	for k := 0; k < n; k++ {
		isShift := ops.ScalarEq(amount, uint64(k))
		for i := 0; i < n; i++ {
			var candidate oracle.CT
			if i+k < n {
				candidate = content[i+k]
			} else {
				candidate = ops.TrivialEnc(0)
			}
			out[i] = ops.Cmux(isShift, candidate, out[i])
		}
	}
	return out
}
