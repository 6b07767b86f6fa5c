// Package fhesplit is the split family (C8 of the design): split, rsplit,
// split_terminator, rsplit_terminator, split_inclusive,
// split_ascii_whitespace and the bounded splitn/rsplitn variants. It is
// the largest subsystem because a result's shape (how many parts) is
// itself secret, so every variant must allocate a fixed-capacity parts
// vector sized by a public upper bound and report how many leading
// entries are meaningful via an encrypted NumberParts. Grounded on
// original_source's server_key/split.rs, rsplit.rs, rsplitn.rs,
// split_ascii_whitespace.rs and split_inclusive.rs.
package fhesplit

import (
	"github.com/cryptlab/fhestrings/fhebyte"
	"github.com/cryptlab/fhestrings/fheconcat"
	"github.com/cryptlab/fhestrings/fhepad"
	"github.com/cryptlab/fhestrings/fhepattern"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/oracle"
)

// Result is a split outcome: a fixed-capacity sequence of parts, an
// encrypted count of how many leading parts are semantically valid, and a
// cursor for iterator-style consumers. Entries at or beyond NumberParts
// are padding: honest consumers must not read their content.
type Result struct {
	Parts        []fhestring.FheString
	NumberParts  oracle.CT
	CurrentIndex int
}

// MaxParts returns the conservative upper bound spec.md §4.8 calls for:
// content capacity plus a small constant, which no plausible plaintext
// can exceed with a non-empty pattern.
func MaxParts(capacity int) int {
	return capacity + 2
}

// findFromOffset scans s for the first occurrence of pattern starting at
// or after the encrypted position start, masking out any match whose
// index precedes start. This is the "allowing empty pattern" search the
// common skeleton calls for at every step of the cursor walk.
func findFromOffset(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern, start oracle.CT) (found, index oracle.CT) {
	found = fhebyte.False(ops)
	index = ops.TrivialEnc(0)
	for i := range s.Content {
		positionOK := ops.Le(start, ops.TrivialEnc(uint64(i)))
		matchesHere := ops.And(positionOK, pattern.IsPrefixOfSlice(ops, s.Content[i:]))
		isFirst := ops.And(matchesHere, ops.Not(found))
		index = ops.Cmux(isFirst, ops.TrivialEnc(uint64(i)), index)
		found = ops.Or(found, matchesHere)
	}
	return found, index
}

// rfindUpTo mirrors findFromOffset for the reverse scan: the last
// occurrence whose index is at or before end.
func rfindUpTo(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern, end oracle.CT) (found, index oracle.CT) {
	found = fhebyte.False(ops)
	index = ops.TrivialEnc(0)
	for i := range s.Content {
		positionOK := ops.Le(ops.TrivialEnc(uint64(i)), end)
		matchesHere := ops.And(positionOK, pattern.IsPrefixOfSlice(ops, s.Content[i:]))
		index = ops.Cmux(matchesHere, ops.TrivialEnc(uint64(i)), index)
		found = ops.Or(found, matchesHere)
	}
	return found, index
}

func substringTo(ops oracle.ServerOps, s fhestring.FheString, start, end oracle.CT) fhestring.FheString {
	_, result := fheconcat.SubstringEncrypted(ops, s, start, end)
	return result
}

// splitForward is the shared engine behind Split, SplitTerminator and
// SplitInclusive: repeatedly search from a cursor, emit the slice up to
// (or including) the match, and advance the cursor past it.
//
// stopped latches the first time a search comes up empty. Without it,
// startPart would stay put while the loop keeps running, and every later
// iteration would re-find the same "no more matches" result and re-emit
// the identical nonempty remainder substring(startPart, lengthS) into each
// padding slot — inflating every consumer that sums part lengths across
// the whole Parts array instead of stopping at NumberParts. Once stopped,
// every later slot is pinned to substring(lengthS, lengthS), the empty
// string.
func splitForward(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern, maxParts int, dropTrailingEmpty, inclusive bool) Result {
	lengthS := s.Length.ToEncrypted(ops)
	patternLen := pattern.Length(ops)

	startPart := ops.TrivialEnc(0)
	numberParts := ops.TrivialEnc(1)
	stopped := fhebyte.False(ops)
	trailingEmpty := fhebyte.False(ops)
	parts := make([]fhestring.FheString, maxParts)

	for k := 0; k < maxParts; k++ {
		found, hit := findFromOffset(ops, s, pattern, startPart)
		found = ops.And(found, ops.Not(stopped))
		emitEnd := hit
		if inclusive {
			emitEnd = ops.Cmux(found, ops.Add(hit, patternLen), lengthS)
		}
		notFoundEnd := lengthS
		end := ops.Cmux(found, emitEnd, notFoundEnd)
		thisStart := ops.Cmux(stopped, lengthS, startPart)
		parts[k] = substringTo(ops, s, thisStart, end)

		numberParts = fhebyte.IncrementIf(ops, numberParts, found)
		startPart = ops.Cmux(found, ops.Add(hit, patternLen), startPart)
		trailingEmpty = ops.Or(trailingEmpty, ops.Eq(startPart, lengthS))
		stopped = ops.Or(stopped, ops.Not(found))
	}
	if dropTrailingEmpty {
		numberParts = ops.Sub(numberParts, ops.BoolToRadix(trailingEmpty))
	}
	return Result{Parts: parts, NumberParts: numberParts}
}

// splitReverse mirrors splitForward scanning from the right, with the same
// stopped latch pinning every slot past the true last part to
// substring(0, 0).
func splitReverse(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern, maxParts int, dropTrailingEmpty bool) Result {
	lengthS := s.Length.ToEncrypted(ops)
	patternLen := pattern.Length(ops)

	endPart := lengthS
	numberParts := ops.TrivialEnc(1)
	stopped := fhebyte.False(ops)
	leadingEmpty := fhebyte.False(ops)
	parts := make([]fhestring.FheString, maxParts)

	for k := 0; k < maxParts; k++ {
		found, hit := rfindUpTo(ops, s, pattern, fhebyte.SaturatingSub(ops, endPart, ops.TrivialEnc(1)))
		found = ops.And(found, ops.Not(stopped))
		start := ops.Cmux(found, ops.Add(hit, patternLen), ops.TrivialEnc(0))
		thisEnd := ops.Cmux(stopped, ops.TrivialEnc(0), endPart)
		parts[k] = substringTo(ops, s, start, thisEnd)

		numberParts = fhebyte.IncrementIf(ops, numberParts, found)
		endPart = ops.Cmux(found, hit, endPart)
		leadingEmpty = ops.Or(leadingEmpty, ops.Eq(endPart, ops.TrivialEnc(0)))
		stopped = ops.Or(stopped, ops.Not(found))
	}
	if dropTrailingEmpty {
		numberParts = ops.Sub(numberParts, ops.BoolToRadix(leadingEmpty))
	}
	return Result{Parts: parts, NumberParts: numberParts}
}

// splitEmptyPattern is split's dedicated empty-pattern path: one
// single-byte part per content byte, framed by a zero-length part on each
// side, matching the textbook definition of splitting on "" (Rust's
// "abc".split("") == ["", "a", "b", "c", ""]). Slots beyond NumberParts
// (including the unused tail of the maxParts allocation) hold explicit
// zero-length parts, never leftover real bytes.
func splitEmptyPattern(ops oracle.ServerOps, s fhestring.FheString, maxParts int) Result {
	final := fhepad.PushPaddingToEnd(ops, s)
	lengthS := final.Length.ToEncrypted(ops)
	capacity := len(final.Content)

	emptyPart := fhestring.New(nil, fhestring.PadNone, fhestring.ClearLength(0))
	parts := make([]fhestring.FheString, maxParts)
	parts[0] = emptyPart
	for i := 0; i < capacity && i+1 < maxParts; i++ {
		inRange := ops.Lt(ops.TrivialEnc(uint64(i)), lengthS)
		content := []oracle.CT{ops.Cmux(inRange, final.Content[i], ops.TrivialEnc(0))}
		length := fhestring.EncryptedLength(ops.Cmux(inRange, ops.TrivialEnc(1), ops.TrivialEnc(0)))
		parts[i+1] = fhestring.New(content, fhestring.PadFinal, length)
	}
	for slot := capacity + 1; slot < maxParts; slot++ {
		parts[slot] = emptyPart
	}
	return Result{Parts: parts, NumberParts: ops.ScalarAdd(lengthS, 2)}
}

// splitTerminatorEmptyPattern is splitEmptyPattern with the trailing empty
// part dropped from the count, the empty-pattern analogue of
// split_terminator treating the pattern as a terminator rather than a
// separator.
func splitTerminatorEmptyPattern(ops oracle.ServerOps, s fhestring.FheString, maxParts int) Result {
	result := splitEmptyPattern(ops, s, maxParts)
	lengthS := fhepad.PushPaddingToEnd(ops, s).Length.ToEncrypted(ops)
	result.NumberParts = ops.ScalarAdd(lengthS, 1)
	return result
}

// reverseFrontAligned returns s's true content reversed and front-aligned
// (PadFinal), same length — the building block rsplit's empty-pattern path
// uses to reuse splitEmptyPattern's forward per-byte walk on the reversal
// instead of duplicating it backward.
func reverseFrontAligned(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	final := fhepad.PushPaddingToEnd(ops, s)
	n := len(final.Content)
	reversed := make([]oracle.CT, n)
	for i, c := range final.Content {
		reversed[n-1-i] = c
	}
	return fhepad.RemoveInitialPadding(ops, fhestring.New(reversed, fhestring.PadInitial, final.Length))
}

// rsplitEmptyPattern mirrors splitEmptyPattern scanning from the right:
// one single-byte part per content byte in right-to-left order, framed by
// a zero-length part on each side.
func rsplitEmptyPattern(ops oracle.ServerOps, s fhestring.FheString, maxParts int) Result {
	return splitEmptyPattern(ops, reverseFrontAligned(ops, s), maxParts)
}

// rsplitTerminatorEmptyPattern mirrors splitTerminatorEmptyPattern scanning
// from the right.
func rsplitTerminatorEmptyPattern(ops oracle.ServerOps, s fhestring.FheString, maxParts int) Result {
	return splitTerminatorEmptyPattern(ops, reverseFrontAligned(ops, s), maxParts)
}

// Split divides s on every occurrence of pattern, keeping empty leading
// and trailing parts (the std::str::split convention).
func Split(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) Result {
	maxParts := MaxParts(len(s.Content))
	if fhepattern.IsClearEmpty(pattern) {
		return splitEmptyPattern(ops, s, maxParts)
	}
	return splitForward(ops, s, pattern, maxParts, false, false)
}

// RSplit divides s scanning from the right; parts are produced in
// right-to-left order, matching std::str::rsplit.
func RSplit(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) Result {
	maxParts := MaxParts(len(s.Content))
	if fhepattern.IsClearEmpty(pattern) {
		return rsplitEmptyPattern(ops, s, maxParts)
	}
	return splitReverse(ops, s, pattern, maxParts, false)
}

// SplitTerminator behaves like Split but drops one trailing empty part,
// matching std::str::split_terminator's treatment of pattern as a
// terminator rather than a separator.
func SplitTerminator(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) Result {
	maxParts := MaxParts(len(s.Content))
	if fhepattern.IsClearEmpty(pattern) {
		return splitTerminatorEmptyPattern(ops, s, maxParts)
	}
	return splitForward(ops, s, pattern, maxParts, true, false)
}

// RSplitTerminator is SplitTerminator scanning from the right.
func RSplitTerminator(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) Result {
	maxParts := MaxParts(len(s.Content))
	if fhepattern.IsClearEmpty(pattern) {
		return rsplitTerminatorEmptyPattern(ops, s, maxParts)
	}
	return splitReverse(ops, s, pattern, maxParts, true)
}

// SplitInclusive behaves like Split except each emitted part (other than
// a possible final one) includes the matched pattern at its end. An empty
// pattern has nothing to include, so it falls back to the same dedicated
// path as SplitTerminator.
func SplitInclusive(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern) Result {
	maxParts := MaxParts(len(s.Content))
	if fhepattern.IsClearEmpty(pattern) {
		return splitTerminatorEmptyPattern(ops, s, maxParts)
	}
	return splitForward(ops, s, pattern, maxParts, true, true)
}

// isAsciiWhiteSpace reports (as an encrypted boolean) whether c is one of
// the six ASCII whitespace bytes std::str::split_ascii_whitespace treats
// as a separator: space, tab, LF, VT, FF, CR.
func isAsciiWhiteSpace(ops oracle.ServerOps, c oracle.CT) oracle.CT {
	return fhebyte.OrAll(ops,
		ops.ScalarEq(c, ' '),
		ops.ScalarEq(c, '\t'),
		ops.ScalarEq(c, '\n'),
		ops.ScalarEq(c, '\v'),
		ops.ScalarEq(c, '\f'),
		ops.ScalarEq(c, '\r'),
	)
}

// SplitAsciiWhitespace splits s on maximal runs of ASCII whitespace,
// discarding empty chunks entirely (the std::str::split_ascii_whitespace
// convention, distinct from Split's "every separator produces a part").
// Its max-parts bound is capacity/2+1: the densest possible packing
// alternates one content byte with one whitespace byte.
func SplitAsciiWhitespace(ops oracle.ServerOps, s fhestring.FheString) Result {
	maxParts := len(s.Content)/2 + 1
	parts := make([]fhestring.FheString, maxParts)
	numberParts := ops.TrivialEnc(0)

	cursor := ops.TrivialEnc(0)
	for k := 0; k < maxParts; k++ {
		chunkStart, foundStart := nextNonWhitespace(ops, s, cursor)
		chunkEnd := nextWhitespaceOrEnd(ops, s, chunkStart)
		parts[k] = substringTo(ops, s, chunkStart, chunkEnd)
		numberParts = fhebyte.IncrementIf(ops, numberParts, foundStart)
		cursor = ops.Cmux(foundStart, chunkEnd, cursor)
	}
	return Result{Parts: parts, NumberParts: numberParts}
}

func nextNonWhitespace(ops oracle.ServerOps, s fhestring.FheString, start oracle.CT) (pos, found oracle.CT) {
	found = fhebyte.False(ops)
	pos = start
	for i, c := range s.Content {
		positionOK := ops.Le(start, ops.TrivialEnc(uint64(i)))
		isContent := ops.And(positionOK, fhebyte.IsNonZero(ops, c))
		notWhitespace := ops.And(isContent, ops.Not(isAsciiWhiteSpace(ops, c)))
		isFirst := ops.And(notWhitespace, ops.Not(found))
		pos = ops.Cmux(isFirst, ops.TrivialEnc(uint64(i)), pos)
		found = ops.Or(found, notWhitespace)
	}
	return pos, found
}

func nextWhitespaceOrEnd(ops oracle.ServerOps, s fhestring.FheString, start oracle.CT) oracle.CT {
	lengthS := s.Length.ToEncrypted(ops)
	pos := lengthS
	found := fhebyte.False(ops)
	for i, c := range s.Content {
		positionOK := ops.Lt(start, ops.TrivialEnc(uint64(i)))
		isSeparator := ops.Or(isAsciiWhiteSpace(ops, c), fhebyte.IsZero(ops, c))
		matches := ops.And(positionOK, isSeparator)
		isFirst := ops.And(matches, ops.Not(found))
		pos = ops.Cmux(isFirst, ops.TrivialEnc(uint64(i)), pos)
		found = ops.Or(found, matches)
	}
	return pos
}

// SplitN behaves like Split but stops after n parts (the final part holds
// everything left), for a clear upper bound nMax on n. When n is itself
// encrypted, pass an EncryptedLength-backed count; nMax still bounds the
// loop and the output capacity.
//
// stopped latches once the slot holding the final part (start..end of s)
// has been emitted. Without it, startPart would sit mid-string on later
// iterations and findFromOffset could pick up a real match in the
// untouched remainder, leaking a nonempty part past NumberParts into
// slots callers are told to ignore.
func SplitN(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern, n fhestring.Length, nMax int) Result {
	lengthS := s.Length.ToEncrypted(ops)
	patternLen := pattern.Length(ops)
	nEnc := n.ToEncrypted(ops)

	startPart := ops.TrivialEnc(0)
	numberParts := ops.TrivialEnc(1)
	stopped := fhebyte.False(ops)
	parts := make([]fhestring.FheString, nMax)

	for k := 0; k < nMax; k++ {
		isLastSlot := ops.ScalarEq(nEnc, uint64(k+1))
		found, hit := findFromOffset(ops, s, pattern, startPart)
		found = ops.And(found, ops.Not(ops.Or(isLastSlot, stopped)))
		end := ops.Cmux(found, hit, lengthS)
		thisStart := ops.Cmux(stopped, lengthS, startPart)
		parts[k] = substringTo(ops, s, thisStart, end)

		numberParts = fhebyte.IncrementIf(ops, numberParts, ops.And(found, ops.Lt(ops.TrivialEnc(uint64(k+1)), nEnc)))
		startPart = ops.Cmux(found, ops.Add(hit, patternLen), startPart)
		stopped = ops.Or(stopped, isLastSlot)
	}
	return Result{Parts: parts, NumberParts: numberParts}
}

// RSplitN mirrors SplitN scanning from the right, with the same stopped
// latch guarding the slots beyond the final part.
func RSplitN(ops oracle.ServerOps, s fhestring.FheString, pattern fhepattern.Pattern, n fhestring.Length, nMax int) Result {
	patternLen := pattern.Length(ops)
	nEnc := n.ToEncrypted(ops)

	endPart := s.Length.ToEncrypted(ops)
	numberParts := ops.TrivialEnc(1)
	stopped := fhebyte.False(ops)
	parts := make([]fhestring.FheString, nMax)

	for k := 0; k < nMax; k++ {
		isLastSlot := ops.ScalarEq(nEnc, uint64(k+1))
		found, hit := rfindUpTo(ops, s, pattern, fhebyte.SaturatingSub(ops, endPart, ops.TrivialEnc(1)))
		found = ops.And(found, ops.Not(ops.Or(isLastSlot, stopped)))
		thisEnd := ops.Cmux(stopped, ops.TrivialEnc(0), endPart)
		start := ops.Cmux(found, ops.Add(hit, patternLen), ops.TrivialEnc(0))
		parts[k] = substringTo(ops, s, start, thisEnd)

		numberParts = fhebyte.IncrementIf(ops, numberParts, ops.And(found, ops.Lt(ops.TrivialEnc(uint64(k+1)), nEnc)))
		endPart = ops.Cmux(found, hit, endPart)
		stopped = ops.Or(stopped, isLastSlot)
	}
	return Result{Parts: parts, NumberParts: numberParts}
}
