// Package fhestring is the encrypted-string data model: content, padding
// regime, and length bookkeeping (C2 of the design). It owns only the
// container type and its invariant-preserving accessors; construction from
// plaintext lives in fheclient, and every transformation (search, split,
// concat, ...) lives in its own package one level up.
package fhestring

import "github.com/cryptlab/fhestrings/oracle"

// Padding tags where null bytes may appear among the content bytes of an
// FheString. It is always a conservative upper bound: a string tagged
// Anywhere may in fact be null-free.
type Padding uint8

const (
	// PadNone means no content byte encrypts 0; length is clear and equals
	// content capacity.
	PadNone Padding = iota
	// PadFinal means every non-null byte precedes every null byte.
	PadFinal
	// PadInitial means every non-null byte follows every null byte.
	PadInitial
	// PadInitialAndFinal means nulls may appear at both ends, none in the middle.
	PadInitialAndFinal
	// PadAnywhere means no ordering constraint on null placement.
	PadAnywhere
)

func (p Padding) String() string {
	switch p {
	case PadNone:
		return "None"
	case PadFinal:
		return "Final"
	case PadInitial:
		return "Initial"
	case PadInitialAndFinal:
		return "InitialAndFinal"
	case PadAnywhere:
		return "Anywhere"
	default:
		return "Unknown"
	}
}

// FheString is the (content, padding, length) triple described in
// spec.md §3. Containers are immutable once handed to an operation: every
// function in this module that transforms an FheString returns a new one
// rather than mutating Content in place.
type FheString struct {
	Content []oracle.CT
	Padding Padding
	Length  Length
}

// New builds an FheString from its three fields. It performs no validation:
// callers (fheclient's encrypt paths, and every transformation in this
// module) are responsible for the padding invariant described in
// spec.md §3.
func New(content []oracle.CT, padding Padding, length Length) FheString {
	return FheString{Content: content, Padding: padding, Length: length}
}

// ContentCapacity is the public, fixed size of the content vector: an
// upper bound on the true string length.
func (s FheString) ContentCapacity() int { return len(s.Content) }

// Len returns the length field, clear or encrypted.
func (s FheString) Len() Length { return s.Length }

// IsEmpty returns an encrypted boolean: 1 iff the true length is 0. Use
// IsEmptyClear first when a non-oblivious fast path is acceptable (it
// never is for a value that influences an algorithm's output, only for
// shaping loops over public capacities).
func (s FheString) IsEmpty(ops oracle.ServerOps) oracle.CT {
	if n, ok := s.Length.Clear(); ok {
		if n == 0 {
			return ops.TrivialEnc(1)
		}
		return ops.TrivialEnc(0)
	}
	ec, _ := s.Length.Encrypted()
	return ops.ScalarEq(ec, 0)
}

// IsEmptyClear reports whether s's length is known to be zero without
// calling into the oracle. The second return value is false whenever the
// length is encrypted, in which case the first is meaningless.
func (s FheString) IsEmptyClear() (empty bool, knownClear bool) {
	n, ok := s.Length.Clear()
	if !ok {
		return false, false
	}
	return n == 0, true
}

// CloneContent returns a fresh copy of s.Content so a caller may mutate it
// (as fhepad's normalizers do) without aliasing s's own backing array, per
// the no-aliasing-after-return invariant in spec.md §3.
func (s FheString) CloneContent() []oracle.CT {
	out := make([]oracle.CT, len(s.Content))
	copy(out, s.Content)
	return out
}
