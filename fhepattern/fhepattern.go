// Package fhepattern is the pattern abstraction over the four needle kinds
// this module searches for: a clear string, a clear character, an
// encrypted character, and an encrypted string. Grounded on
// original_source's examples/fhe_strings/pattern.rs FhePattern/FheCharPattern
// traits.
//
// Go has no blanket impl (the Rust `impl<T: FheCharPattern> FhePattern for
// T`), so NewClearChar and NewEncryptedChar return a charAdapter wrapping
// the single-character pattern; charAdapter supplies every Pattern method
// in terms of the smaller CharPattern contract — the same generalization
// the Rust blanket impl performs, written out by hand.
//
// The Rust trait's split methods (split_string/rsplit_string/
// rsplit_terminator_string) are not part of Pattern here: fhesplit builds
// every split on Pattern's search methods and Length, which keeps
// fhepattern from importing fhesplit and fhesplit from importing back
// into a pattern-owned split method — an import cycle Rust's trait
// system doesn't have to worry about but Go's package graph does.
package fhepattern

import (
	"github.com/cryptlab/fhestrings/fhebyte"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/oracle"
)

// Pattern is a needle that can be located inside an FheString.
type Pattern interface {
	// IsPrefixOfSlice reports whether the pattern matches at position 0 of
	// a raw content slice (no padding bookkeeping).
	IsPrefixOfSlice(ops oracle.ServerOps, haystack []oracle.CT) oracle.CT
	// IsPrefixOfString reports whether the pattern matches at the true
	// start of haystack, accounting for its padding regime.
	IsPrefixOfString(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT
	// IsContainedIn reports whether the pattern occurs anywhere in haystack.
	IsContainedIn(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT
	// FindIn returns (found, index) of the pattern's first occurrence.
	FindIn(ops oracle.ServerOps, haystack fhestring.FheString) (found, index oracle.CT)
	// RfindIn returns (found, index) of the pattern's last occurrence.
	RfindIn(ops oracle.ServerOps, haystack fhestring.FheString) (found, index oracle.CT)
	// Length returns how many content bytes the pattern itself occupies,
	// as an encrypted integer — needed by fhesplit to advance a cursor
	// past a match.
	Length(ops oracle.ServerOps) oracle.CT
}

// CharPattern is the reduced contract a single-byte needle must satisfy;
// charAdapter lifts any CharPattern into a full Pattern.
type CharPattern interface {
	FheEq(ops oracle.ServerOps, c oracle.CT) oracle.CT
}

// IsClearEmpty reports whether pattern is known, without any oracle call,
// to be the empty needle — true only for a ClearString whose own value is
// "". find and split treat an empty pattern specially (see
// fhesearch.FindEmptyPattern and fhesplit's dedicated empty-pattern paths):
// a ClearString's value is already public Go data, so branching on it here
// discloses nothing a caller didn't already know. An EncryptedString whose
// true length happens to be zero is not reported empty here — that would
// require an oblivious check, which the callers of IsClearEmpty don't yet
// perform.
func IsClearEmpty(p Pattern) bool {
	cs, ok := p.(ClearString)
	return ok && cs.Value == ""
}

// defaultIsContainedIn is the shared IsContainedIn body every Pattern
// implementation below delegates to: OR together "is a prefix of haystack
// starting here" over every starting position.
func defaultIsContainedIn(ops oracle.ServerOps, p Pattern, haystack fhestring.FheString) oracle.CT {
	result := fhebyte.False(ops)
	for i := range haystack.Content {
		result = ops.Or(result, p.IsPrefixOfSlice(ops, haystack.Content[i:]))
	}
	return result
}

// defaultFindIn scans left to right, latching onto the first position
// where the pattern matches as a prefix of the remaining slice.
func defaultFindIn(ops oracle.ServerOps, p Pattern, haystack fhestring.FheString) (oracle.CT, oracle.CT) {
	found := fhebyte.False(ops)
	index := ops.TrivialEnc(0)
	for i := range haystack.Content {
		matchesHere := p.IsPrefixOfSlice(ops, haystack.Content[i:])
		isFirst := ops.And(matchesHere, ops.Not(found))
		index = ops.Cmux(isFirst, ops.TrivialEnc(uint64(i)), index)
		found = ops.Or(found, matchesHere)
	}
	return found, index
}

// defaultRfindIn scans left to right but keeps overwriting the index on
// every match, so the last one wins.
func defaultRfindIn(ops oracle.ServerOps, p Pattern, haystack fhestring.FheString) (oracle.CT, oracle.CT) {
	found := fhebyte.False(ops)
	index := ops.TrivialEnc(0)
	for i := range haystack.Content {
		matchesHere := p.IsPrefixOfSlice(ops, haystack.Content[i:])
		index = ops.Cmux(matchesHere, ops.TrivialEnc(uint64(i)), index)
		found = ops.Or(found, matchesHere)
	}
	return found, index
}

// ---- ClearString: a public, plaintext []byte needle ----

type ClearString struct {
	Value string
}

func NewClearString(s string) ClearString { return ClearString{Value: s} }

func (p ClearString) IsPrefixOfSlice(ops oracle.ServerOps, haystack []oracle.CT) oracle.CT {
	if len(p.Value) > len(haystack) {
		return fhebyte.False(ops)
	}
	result := fhebyte.True(ops)
	n := len(p.Value)
	if len(haystack) < n {
		n = len(haystack)
	}
	for i := 0; i < n; i++ {
		result = ops.And(result, ops.ScalarEq(haystack[i], uint64(p.Value[i])))
	}
	return result
}

func (p ClearString) IsPrefixOfString(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT {
	if n, ok := haystack.Length.Clear(); ok && n < len(p.Value) {
		return fhebyte.False(ops)
	}
	if len(haystack.Content) < len(p.Value) {
		return fhebyte.False(ops)
	}
	switch haystack.Padding {
	case fhestring.PadNone, fhestring.PadFinal:
		return p.IsPrefixOfSlice(ops, haystack.Content)
	default:
		return p.IsPrefixOfSlice(ops, unpaddedInitialContent(ops, haystack))
	}
}

func (p ClearString) IsContainedIn(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT {
	return defaultIsContainedIn(ops, p, haystack)
}

func (p ClearString) FindIn(ops oracle.ServerOps, haystack fhestring.FheString) (oracle.CT, oracle.CT) {
	return defaultFindIn(ops, p, haystack)
}

func (p ClearString) RfindIn(ops oracle.ServerOps, haystack fhestring.FheString) (oracle.CT, oracle.CT) {
	return defaultRfindIn(ops, p, haystack)
}

func (p ClearString) Length(ops oracle.ServerOps) oracle.CT {
	return ops.TrivialEnc(uint64(len(p.Value)))
}

// ---- EncryptedString: an FheString needle, itself padded ----

type EncryptedString struct {
	Value fhestring.FheString
}

func NewEncryptedString(s fhestring.FheString) EncryptedString { return EncryptedString{Value: s} }

func (p EncryptedString) needleCapacity() int {
	if n, ok := p.Value.Length.Clear(); ok {
		return n
	}
	return len(p.Value.Content)
}

func (p EncryptedString) IsPrefixOfSlice(ops oracle.ServerOps, haystack []oracle.CT) oracle.CT {
	if n, ok := p.Value.Length.Clear(); ok && n > len(haystack) {
		return fhebyte.False(ops)
	}
	maxLen := p.needleCapacity()
	limit := maxLen
	if len(haystack) < limit {
		limit = len(haystack)
	}
	content := p.Value.Content
	if p.Value.Padding != fhestring.PadNone {
		content = unpaddedInitialContent(ops, p.Value)
	}
	result := fhebyte.True(ops)
	switch p.Value.Padding {
	case fhestring.PadNone:
		for n := 0; n < limit; n++ {
			result = ops.And(result, ops.Eq(haystack[n], content[n]))
		}
	default:
		for n := 0; n < limit; n++ {
			matchOrEnd := ops.Or(ops.Eq(haystack[n], content[n]), fhebyte.IsZero(ops, content[n]))
			result = ops.And(result, matchOrEnd)
		}
		if len(haystack) < maxLen {
			result = ops.And(result, fhebyte.IsZero(ops, content[len(haystack)]))
		}
	}
	return result
}

func (p EncryptedString) IsPrefixOfString(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT {
	if nn, ok := p.Value.Length.Clear(); ok {
		if hn, ok2 := haystack.Length.Clear(); ok2 && nn > hn {
			return fhebyte.False(ops)
		}
		if nn > len(haystack.Content) {
			return fhebyte.False(ops)
		}
	}
	switch haystack.Padding {
	case fhestring.PadNone, fhestring.PadFinal:
		return p.IsPrefixOfSlice(ops, haystack.Content)
	default:
		return p.IsPrefixOfSlice(ops, unpaddedInitialContent(ops, haystack))
	}
}

func (p EncryptedString) IsContainedIn(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT {
	return defaultIsContainedIn(ops, p, haystack)
}

func (p EncryptedString) FindIn(ops oracle.ServerOps, haystack fhestring.FheString) (oracle.CT, oracle.CT) {
	return defaultFindIn(ops, p, haystack)
}

func (p EncryptedString) RfindIn(ops oracle.ServerOps, haystack fhestring.FheString) (oracle.CT, oracle.CT) {
	return defaultRfindIn(ops, p, haystack)
}

func (p EncryptedString) Length(ops oracle.ServerOps) oracle.CT {
	return p.Value.Length.ToEncrypted(ops)
}

// unpaddedInitialContent removes any leading padding from s so prefix
// comparisons can assume the true content starts at index 0. It is a thin
// wrapper that fhepad would otherwise provide; fhepattern keeps its own
// copy of just this one operation rather than importing fhepad, which
// itself has no reason to depend back on fhepattern but would create an
// awkward low-level-importing-a-sibling shape for what is a single loop.
func unpaddedInitialContent(ops oracle.ServerOps, s fhestring.FheString) []oracle.CT {
	content := s.CloneContent()
	n := len(content)
	out := make([]oracle.CT, n)
	copy(out, content)
	for i := 0; i < n; i++ {
		isNull := fhebyte.IsZero(ops, out[i])
		for j := i + 1; j < n; j++ {
			jIsNonNull := fhebyte.IsNonZero(ops, out[j])
			shouldTake := ops.And(isNull, jIsNonNull)
			moved := ops.Cmux(shouldTake, out[j], out[i])
			out[i] = moved
			out[j] = ops.Cmux(shouldTake, ops.TrivialEnc(0), out[j])
			isNull = fhebyte.IsZero(ops, out[i])
		}
	}
	return out
}

// ---- charAdapter: lifts a CharPattern into a full Pattern ----

type charAdapter struct {
	CharPattern
}

func (a charAdapter) IsPrefixOfSlice(ops oracle.ServerOps, haystack []oracle.CT) oracle.CT {
	if len(haystack) == 0 {
		return fhebyte.False(ops)
	}
	return a.FheEq(ops, haystack[0])
}

func (a charAdapter) IsPrefixOfString(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT {
	switch haystack.Padding {
	case fhestring.PadNone, fhestring.PadFinal:
		return a.IsPrefixOfSlice(ops, haystack.Content)
	case fhestring.PadInitial, fhestring.PadInitialAndFinal:
		return a.isPrefixOfConnected(ops, haystack)
	default:
		return a.isPrefixOfAnyPadding(ops, haystack)
	}
}

// isPrefixOfConnected handles Initial/InitialAndFinal padding: the true
// content is one contiguous run, so "is the first non-null byte a match"
// only needs a running "previous byte was null" flag.
func (a charAdapter) isPrefixOfConnected(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT {
	result := fhebyte.False(ops)
	previousIsNull := fhebyte.True(ops)
	for _, c := range haystack.Content {
		charMatches := a.FheEq(ops, c)
		result = ops.Or(result, ops.And(charMatches, previousIsNull))
		previousIsNull = fhebyte.IsZero(ops, c)
	}
	return result
}

// isPrefixOfAnyPadding handles Anywhere padding: nulls can be interspersed,
// so "still before the first true character" must latch off the moment any
// non-null byte has been seen, not just the immediately preceding one.
func (a charAdapter) isPrefixOfAnyPadding(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT {
	result := fhebyte.False(ops)
	beforeFirstChar := fhebyte.True(ops)
	for _, c := range haystack.Content {
		charMatches := a.FheEq(ops, c)
		matchFirst := ops.And(beforeFirstChar, charMatches)
		result = ops.Or(result, matchFirst)
		beforeFirstChar = ops.And(beforeFirstChar, fhebyte.IsZero(ops, c))
	}
	return result
}

func (a charAdapter) IsContainedIn(ops oracle.ServerOps, haystack fhestring.FheString) oracle.CT {
	return defaultIsContainedIn(ops, a, haystack)
}

func (a charAdapter) FindIn(ops oracle.ServerOps, haystack fhestring.FheString) (oracle.CT, oracle.CT) {
	return defaultFindIn(ops, a, haystack)
}

func (a charAdapter) RfindIn(ops oracle.ServerOps, haystack fhestring.FheString) (oracle.CT, oracle.CT) {
	return defaultRfindIn(ops, a, haystack)
}

func (a charAdapter) Length(ops oracle.ServerOps) oracle.CT {
	return ops.TrivialEnc(1)
}

// ---- ClearChar and EncryptedChar: the two CharPattern needles ----

type ClearChar struct {
	Value byte
}

func NewClearChar(b byte) Pattern {
	return charAdapter{CharPattern: clearCharEq{value: b}}
}

type clearCharEq struct{ value byte }

func (c clearCharEq) FheEq(ops oracle.ServerOps, ct oracle.CT) oracle.CT {
	return ops.ScalarEq(ct, uint64(c.value))
}

type EncryptedChar struct {
	Value oracle.CT
}

func NewEncryptedChar(c oracle.CT) Pattern {
	return charAdapter{CharPattern: encryptedCharEq{value: c}}
}

type encryptedCharEq struct{ value oracle.CT }

func (c encryptedCharEq) FheEq(ops oracle.ServerOps, ct oracle.CT) oracle.CT {
	return ops.Eq(ct, c.value)
}
