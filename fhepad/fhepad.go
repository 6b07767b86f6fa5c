// Package fhepad normalizes where null bytes sit inside an FheString's
// content vector, converting between the five fhestring.Padding regimes.
// Every algorithm upstream of this package assumes its input already
// carries one specific regime; fhepad is where that assumption gets made
// true. Grounded on original_source's server_key/change_padding.rs.
package fhepad

import (
	"github.com/cryptlab/fhestrings/fhebyte"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/oracle"
)

// PushPaddingToEnd rewrites s so every null byte moves to the tail,
// producing PadFinal content regardless of the input regime. It is
// oblivious: the scan touches every position regardless of where the
// nulls actually were.
func PushPaddingToEnd(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	switch s.Padding {
	case fhestring.PadNone, fhestring.PadFinal:
		return fhestring.New(s.CloneContent(), fhestring.PadFinal, s.Length)
	default:
		content := pushNonNullsLeft(ops, s.CloneContent())
		return fhestring.New(content, fhestring.PadFinal, s.Length)
	}
}

// PushPaddingToStart rewrites s so every null byte moves to the head,
// producing PadInitial content.
func PushPaddingToStart(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	reversed := reverseCT(s.CloneContent())
	pushed := pushNonNullsLeft(ops, reversed)
	content := reverseCT(pushed)
	return fhestring.New(content, fhestring.PadInitial, s.Length)
}

// pushNonNullsLeft is a single oblivious left-compaction pass: every
// position scans every position to its right and, if it is itself null,
// conditionally swaps in the nearest non-null byte found there. This is
// the compare-and-swap sweep change_padding.rs performs one direction at a
// time; it runs in O(n^2) oracle calls, same as the original.
func pushNonNullsLeft(ops oracle.ServerOps, content []oracle.CT) []oracle.CT {
	n := len(content)
	out := make([]oracle.CT, n)
	copy(out, content)
	for i := 0; i < n; i++ {
		isNull := fhebyte.IsZero(ops, out[i])
		for j := i + 1; j < n; j++ {
			stillNull := isNull
			jIsNonNull := fhebyte.IsNonZero(ops, out[j])
			shouldTake := ops.And(stillNull, jIsNonNull)
			moved := ops.Cmux(shouldTake, out[j], out[i])
			out[i] = moved
			out[j] = ops.Cmux(shouldTake, ops.TrivialEnc(0), out[j])
			isNull = fhebyte.IsZero(ops, out[i])
		}
	}
	return out
}

func reverseCT(c []oracle.CT) []oracle.CT {
	n := len(c)
	out := make([]oracle.CT, n)
	for i, v := range c {
		out[n-1-i] = v
	}
	return out
}

// RemoveInitialPadding converts content of any padding regime to PadFinal.
// For PadInitial or PadInitialAndFinal content the non-null run is
// contiguous, so pushing the leading run of nulls to the end takes a single
// rotate-by-encrypted-amount pass instead of the full O(n^2) sweep;
// PadAnywhere content, whose nulls may sit between non-null bytes, goes
// through PushPaddingToEnd's full sweep.
func RemoveInitialPadding(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	switch s.Padding {
	case fhestring.PadNone, fhestring.PadFinal:
		return fhestring.New(s.CloneContent(), fhestring.PadFinal, s.Length)
	case fhestring.PadAnywhere:
		return PushPaddingToEnd(ops, s)
	}
	content := s.CloneContent()
	leadingNulls := popFirstNonZero(ops, content)
	content = rotateLeftByEncrypted(ops, content, leadingNulls)
	return fhestring.New(content, fhestring.PadFinal, s.Length)
}

// RemoveFinalPadding converts PadFinal or PadInitialAndFinal content to
// PadInitial by pushing any trailing run of nulls to the start.
func RemoveFinalPadding(ops oracle.ServerOps, s fhestring.FheString) fhestring.FheString {
	switch s.Padding {
	case fhestring.PadNone:
		return fhestring.New(s.CloneContent(), fhestring.PadInitial, s.Length)
	}
	content := s.CloneContent()
	trailingNulls := popLastNonZero(ops, content)
	content = rotateRightByEncrypted(ops, content, trailingNulls)
	return fhestring.New(content, fhestring.PadInitial, s.Length)
}

// popFirstNonZero returns the encrypted count of leading null bytes in
// content, counting obliviously: once a non-null byte has been seen the
// running "still leading" flag latches false and every later position
// stops contributing.
func popFirstNonZero(ops oracle.ServerOps, content []oracle.CT) oracle.CT {
	count := ops.TrivialEnc(0)
	stillLeading := fhebyte.True(ops)
	for _, c := range content {
		isNull := fhebyte.IsZero(ops, c)
		count = fhebyte.IncrementIf(ops, count, ops.And(stillLeading, isNull))
		stillLeading = ops.And(stillLeading, isNull)
	}
	return count
}

// popLastNonZero returns the encrypted count of trailing null bytes, the
// mirror image of popFirstNonZero scanning from the right.
func popLastNonZero(ops oracle.ServerOps, content []oracle.CT) oracle.CT {
	count := ops.TrivialEnc(0)
	stillTrailing := fhebyte.True(ops)
	for i := len(content) - 1; i >= 0; i-- {
		isNull := fhebyte.IsZero(ops, content[i])
		count = fhebyte.IncrementIf(ops, count, ops.And(stillTrailing, isNull))
		stillTrailing = ops.And(stillTrailing, isNull)
	}
	return count
}

// rotateLeftByEncrypted rotates content left by an encrypted, data-dependent
// amount without ever branching on it: for every candidate shift amount k
// in [0, n), it obliviously selects whether k was the right one and folds
// that candidate rotation into the result via Cmux.
func rotateLeftByEncrypted(ops oracle.ServerOps, content []oracle.CT, shift oracle.CT) []oracle.CT {
	n := len(content)
	out := make([]oracle.CT, n)
	copy(out, content)
	for k := 0; k < n; k++ {
		isShift := ops.ScalarEq(shift, uint64(k))
		candidate := rotateLeftClear(content, k)
		for i := range out {
			out[i] = ops.Cmux(isShift, candidate[i], out[i])
		}
	}
	return out
}

// rotateRightByEncrypted mirrors rotateLeftByEncrypted for a right rotation.
func rotateRightByEncrypted(ops oracle.ServerOps, content []oracle.CT, shift oracle.CT) []oracle.CT {
	n := len(content)
	out := make([]oracle.CT, n)
	copy(out, content)
	for k := 0; k < n; k++ {
		isShift := ops.ScalarEq(shift, uint64(k))
		candidate := rotateRightClear(content, k)
		for i := range out {
			out[i] = ops.Cmux(isShift, candidate[i], out[i])
		}
	}
	return out
}

func rotateLeftClear(content []oracle.CT, k int) []oracle.CT {
	n := len(content)
	if n == 0 {
		return nil
	}
	k %= n
	out := make([]oracle.CT, n)
	for i := 0; i < n; i++ {
		out[i] = content[(i+k)%n]
	}
	return out
}

func rotateRightClear(content []oracle.CT, k int) []oracle.CT {
	n := len(content)
	if n == 0 {
		return nil
	}
	k %= n
	out := make([]oracle.CT, n)
	for i := 0; i < n; i++ {
		out[(i+k)%n] = content[i]
	}
	return out
}
