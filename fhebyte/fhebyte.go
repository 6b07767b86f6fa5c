// Package fhebyte wraps oracle.ServerOps with the small idioms that recur
// in every oblivious algorithm in this module: chained boolean
// accumulation, conditional increment, and conditional select over
// non-ciphertext-shaped values. None of it hides what the oracle is
// doing — it just collapses the same three-line pattern that otherwise
// shows up dozens of times across fhesearch, fhesplit and fhereplace.
package fhebyte

import "github.com/cryptlab/fhestrings/oracle"

// IsZero returns an encrypted boolean: 1 iff c decrypts to 0.
func IsZero(ops oracle.ServerOps, c oracle.CT) oracle.CT {
	return ops.ScalarEq(c, 0)
}

// IsNonZero returns an encrypted boolean: 1 iff c does not decrypt to 0.
func IsNonZero(ops oracle.ServerOps, c oracle.CT) oracle.CT {
	return ops.ScalarNe(c, 0)
}

// True returns a trivial encryption of 1.
func True(ops oracle.ServerOps) oracle.CT { return ops.TrivialEnc(1) }

// False returns a trivial encryption of 0.
func False(ops oracle.ServerOps) oracle.CT { return ops.TrivialEnc(0) }

// AndAll ANDs a chain of encrypted booleans. Returns True(ops) for an empty
// chain, matching the neutral element of AND.
func AndAll(ops oracle.ServerOps, bs ...oracle.CT) oracle.CT {
	result := True(ops)
	for _, b := range bs {
		result = ops.And(result, b)
	}
	return result
}

// OrAll ORs a chain of encrypted booleans. Returns False(ops) for an empty
// chain, matching the neutral element of OR.
func OrAll(ops oracle.ServerOps, bs ...oracle.CT) oracle.CT {
	result := False(ops)
	for _, b := range bs {
		result = ops.Or(result, b)
	}
	return result
}

// IncrementIf returns acc + 1 if cond else acc. This is the running-index
// update used throughout fhesearch and fhesplit: "advance the cursor only
// on positions that still matter."
func IncrementIf(ops oracle.ServerOps, acc, cond oracle.CT) oracle.CT {
	return ops.Add(acc, ops.BoolToRadix(cond))
}

// DecrementIf returns acc - 1 if cond else acc, used by the reverse-scanning
// search and split engines.
func DecrementIf(ops oracle.ServerOps, acc, cond oracle.CT) oracle.CT {
	return ops.Sub(acc, ops.BoolToRadix(cond))
}

// SaturatingSub returns max(0, a-b) via the oracle's own Sub, which this
// module's backends already define as saturating at zero for unsigned
// radix ciphertexts; SaturatingSub exists to name that invariant at call
// sites that depend on it (clamped length arithmetic in fheconcat and
// fhereplace).
func SaturatingSub(ops oracle.ServerOps, a, b oracle.CT) oracle.CT {
	return ops.Sub(a, b)
}

// ClampToCapacity returns min(c, capacity) as an encrypted value, used to
// keep an encrypted length from ever exceeding a public content capacity
// after arithmetic that could otherwise overflow it.
func ClampToCapacity(ops oracle.ServerOps, c oracle.CT, capacity uint64) oracle.CT {
	return ops.Min(c, ops.TrivialEnc(capacity))
}
