// Package fhecompare is lexicographic ordering, trimming and case
// conversion (C6 of the design). Grounded on original_source's
// server_key/comparisons.rs, trim.rs and change_case.rs.
package fhecompare

import (
	"github.com/cryptlab/fhestrings/fhebyte"
	"github.com/cryptlab/fhestrings/fhepad"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/oracle"
)

// Order mirrors the three orderings this module ever asks the oracle for;
// it exists so Compare stays one function instead of three near-identical
// copies, the same consolidation comparisons.rs does with
// std::cmp::Ordering.
type Order int

const (
	OrderEqual Order = iota
	OrderLess
	OrderGreater
)

func compareChar(ops oracle.ServerOps, c1, c2 oracle.CT, order Order) oracle.CT {
	switch order {
	case OrderLess:
		return ops.Le(c1, c2)
	case OrderGreater:
		return ops.Ge(c1, c2)
	default:
		return ops.Eq(c1, c2)
	}
}

// Compare evaluates the relation named by order between s1 and s2:
// OrderEqual for ==, OrderLess for <=, OrderGreater for >=.
func Compare(ops oracle.ServerOps, s1, s2 fhestring.FheString, order Order) oracle.CT {
	if order == OrderEqual {
		if l1, ok1 := s1.Length.Clear(); ok1 {
			if l2, ok2 := s2.Length.Clear(); ok2 && l1 != l2 {
				return fhebyte.False(ops)
			}
		}
	}
	u1, u2 := unpadInitial(ops, s1), unpadInitial(ops, s2)
	return compareUnpadded(ops, u1, u2, order)
}

// Eq, Le and Ge are the three named relations Compare supports.
func Eq(ops oracle.ServerOps, s1, s2 fhestring.FheString) oracle.CT {
	return Compare(ops, s1, s2, OrderEqual)
}
func Le(ops oracle.ServerOps, s1, s2 fhestring.FheString) oracle.CT {
	return Compare(ops, s1, s2, OrderLess)
}
func Ge(ops oracle.ServerOps, s1, s2 fhestring.FheString) oracle.CT {
	return Compare(ops, s1, s2, OrderGreater)
}

// Lt and Gt are the strict counterparts, derived as "not (other direction
// non-strict)" — comparisons.rs only exposes the three non-strict relations
// plus equal, so strict ordering here is a direct corollary rather than a
// separate oracle pass.
func Lt(ops oracle.ServerOps, s1, s2 fhestring.FheString) oracle.CT {
	return ops.Not(Ge(ops, s1, s2))
}
func Gt(ops oracle.ServerOps, s1, s2 fhestring.FheString) oracle.CT {
	return ops.Not(Le(ops, s1, s2))
}

func unpadInitial(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	switch s.Padding {
	case fhestring.PadNone, fhestring.PadFinal:
		return s
	default:
		return fhepad.RemoveInitialPadding(ops, s)
	}
}

func compareUnpadded(ops oracle.ServerOps, s1, s2 fhestring.FheString, order Order) oracle.CT {
	result := fhebyte.False(ops)
	equalUpToPrev := fhebyte.True(ops)
	equalUpTo := fhebyte.True(ops)
	n1, n2 := len(s1.Content), len(s2.Content)
	minLen := n1
	if n2 < minLen {
		minLen = n2
	}
	for n := 0; n < minLen; n++ {
		charEq := ops.Eq(s1.Content[n], s2.Content[n])
		equalUpTo = ops.And(equalUpToPrev, charEq)
		firstDivergence := ops.And(equalUpToPrev, ops.Not(equalUpTo))
		result = ops.Cmux(firstDivergence, compareChar(ops, s1.Content[n], s2.Content[n], order), result)
		equalUpToPrev = equalUpTo
	}
	switch {
	case n1 > n2:
		if order == OrderGreater {
			return ops.Or(result, equalUpTo)
		}
		return ops.Or(result, ops.And(equalUpTo, fhebyte.IsZero(ops, s1.Content[n2])))
	case n2 > n1:
		if order == OrderLess {
			return ops.Or(result, equalUpTo)
		}
		return ops.Or(result, ops.And(equalUpTo, fhebyte.IsZero(ops, s2.Content[n1])))
	default:
		return ops.Or(result, equalUpTo)
	}
}

// isAsciiWhiteSpace reports (as an encrypted boolean) whether c is one of
// the six ASCII whitespace bytes split_ascii_whitespace.rs's
// is_ascii_white_space treats as a separator: space, tab, LF, VT, FF, CR.
// fhesplit keeps its own copy of this same predicate (needed for a
// different purpose, scanning for runs rather than a leading/trailing
// trim) rather than this package importing the larger C8 split package for
// one helper.
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

// unpadForTrim front-aligns s before a trim scan: TrimStart must see the
// true leading byte at content[0], which only None/Final padding already
// guarantees. Initial/InitialAndFinal/Anywhere content is normalized first
// so a leading null never masquerades as "nothing left to trim".
func unpadForTrim(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	switch s.Padding {
	case fhestring.PadNone, fhestring.PadFinal:
		return s
	default:
		return fhepad.RemoveInitialPadding(ops, s)
	}
}

func trimStartWhile(ops oracle.ServerOps, s fhestring.FheString, isTrimByte func(oracle.ServerOps, oracle.CT) oracle.CT) fhestring.FheString {
	normalized := unpadForTrim(ops, s)
	continueTrimming := fhebyte.True(ops)
	content := make([]oracle.CT, len(normalized.Content))
	trimmedCount := ops.TrivialEnc(0)
	for i, c := range normalized.Content {
		continueTrimming = ops.And(continueTrimming, isTrimByte(ops, c))
		trimmedCount = fhebyte.IncrementIf(ops, trimmedCount, continueTrimming)
		content[i] = ops.Cmux(continueTrimming, ops.TrivialEnc(0), c)
	}
	newLength := fhestring.EncryptedLength(fhebyte.SaturatingSub(ops, normalized.Length.ToEncrypted(ops), trimmedCount))
	return fhestring.New(content, fhestring.PadInitialAndFinal, newLength)
}

// TrimStart removes every leading ASCII whitespace byte from s (tab, LF,
// VT, FF, CR, space).
func TrimStart(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	return trimStartWhile(ops, s, isAsciiWhiteSpace)
}

// TrimEnd removes every trailing ASCII whitespace byte from s.
func TrimEnd(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	reversed := reverseContent(s)
	trimmed := TrimStart(ops, reversed)
	return reverseContent(trimmed)
}

// Trim removes both leading and trailing ASCII whitespace.
func Trim(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	return TrimEnd(ops, TrimStart(ops, s))
}

// TrimStartChar removes every leading occurrence of an explicit byte from
// s — trim.rs's own trim_start_clear_char, kept alongside the ASCII
// whitespace variants above for a caller that wants an exact-byte cut
// rather than the whitespace set.
func TrimStartChar(ops oracle.ServerOps, s fhestring.FheString, character byte) fhestring.FheString {
	return trimStartWhile(ops, s, func(ops oracle.ServerOps, c oracle.CT) oracle.CT {
		return ops.ScalarEq(c, uint64(character))
	})
}

// TrimEndChar removes every trailing occurrence of character from s.
func TrimEndChar(ops oracle.ServerOps, s fhestring.FheString, character byte) fhestring.FheString {
	reversed := reverseContent(s)
	trimmed := TrimStartChar(ops, reversed, character)
	return reverseContent(trimmed)
}

// TrimChar removes both leading and trailing occurrences of character.
func TrimChar(ops oracle.ServerOps, s fhestring.FheString, character byte) fhestring.FheString {
	return TrimEndChar(ops, TrimStartChar(ops, s, character), character)
}

func reverseContent(s fhestring.FheString) fhestring.FheString {
	content := s.CloneContent()
	n := len(content)
	out := make([]oracle.CT, n)
	for i, c := range content {
		out[n-1-i] = c
	}
	return fhestring.New(out, reversePadding(s.Padding), s.Length)
}

// reversePadding swaps Final and Initial, the two tags whose meaning
// depends on a left/right orientation; the other three are symmetric under
// reversal.
func reversePadding(p fhestring.Padding) fhestring.Padding {
	switch p {
	case fhestring.PadFinal:
		return fhestring.PadInitial
	case fhestring.PadInitial:
		return fhestring.PadFinal
	default:
		return p
	}
}

// caseShift is the fixed offset between an ASCII uppercase and lowercase
// letter.
const caseShift = 32

// ToUpper returns an upper-cased copy of s: every byte in ['a','z'] has
// caseShift subtracted, obliviously, and every other byte passes through
// unchanged.
func ToUpper(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	content := make([]oracle.CT, len(s.Content))
	for i, c := range s.Content {
		isLower := ops.And(ops.ScalarGe(c, 'a'), ops.ScalarLe(c, 'z'))
		content[i] = ops.Cmux(isLower, ops.ScalarSub(c, caseShift), c)
	}
	return fhestring.New(content, s.Padding, s.Length)
}

// ToLower returns a lower-cased copy of s.
func ToLower(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	content := make([]oracle.CT, len(s.Content))
	for i, c := range s.Content {
		isUpper := ops.And(ops.ScalarGe(c, 'A'), ops.ScalarLe(c, 'Z'))
		content[i] = ops.Cmux(isUpper, ops.ScalarAdd(c, caseShift), c)
	}
	return fhestring.New(content, s.Padding, s.Length)
}
