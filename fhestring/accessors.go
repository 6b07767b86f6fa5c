package fhestring

import (
	"github.com/cryptlab/fhestrings/fhebyte"
	"github.com/cryptlab/fhestrings/oracle"
)

// Nth returns the n-th non-null (encrypted) character of s, for n a clear
// index. If n is out of range, returns an encryption of the null
// character. Grounded on original_source's server_key/accessors.rs
// nth_clear / nth_clear_padding_anywhere.
func Nth(ops oracle.ServerOps, s FheString, n int) oracle.CT {
	switch s.Padding {
	case PadNone, PadFinal:
		if n < len(s.Content) {
			return s.Content[n]
		}
		return ops.TrivialEnc(0)
	default:
		if n >= len(s.Content) {
			return ops.TrivialEnc(0)
		}
		return nthClearAnywhere(ops, s, n)
	}
}

func nthClearAnywhere(ops oracle.ServerOps, s FheString, n int) oracle.CT {
	currentIndex := ops.TrivialEnc(0)
	result := ops.TrivialEnc(0)
	for _, c := range s.Content {
		rightIndex := ops.ScalarEq(currentIndex, uint64(n))
		result = ops.Cmux(rightIndex, c, result)
		currentIndex = fhebyte.IncrementIf(ops, currentIndex, fhebyte.IsNonZero(ops, c))
	}
	return result
}

// NthEncrypted returns the n-th non-null (encrypted) character of s, for n
// an encrypted index. If n is out of range, returns an encryption of the
// null character.
func NthEncrypted(ops oracle.ServerOps, s FheString, n oracle.CT) oracle.CT {
	switch s.Padding {
	case PadNone, PadFinal:
		return nthEncryptedFinalPadding(ops, s, n)
	default:
		return nthEncryptedAnywhere(ops, s, n)
	}
}

func nthEncryptedFinalPadding(ops oracle.ServerOps, s FheString, n oracle.CT) oracle.CT {
	result := ops.TrivialEnc(0)
	for i, c := range s.Content {
		rightIndex := ops.ScalarEq(n, uint64(i))
		result = ops.Cmux(rightIndex, c, result)
	}
	return result
}

func nthEncryptedAnywhere(ops oracle.ServerOps, s FheString, n oracle.CT) oracle.CT {
	currentIndex := ops.TrivialEnc(0)
	result := ops.TrivialEnc(0)
	for _, c := range s.Content {
		rightIndex := ops.Eq(currentIndex, n)
		result = ops.Cmux(rightIndex, c, result)
		currentIndex = fhebyte.IncrementIf(ops, currentIndex, fhebyte.IsNonZero(ops, c))
	}
	return result
}

// CmuxEmpty returns ifString when cond encrypts 1, else an encryption of
// the empty string of the same capacity. Grounded on accessors.rs's
// cmux_empty_string.
func CmuxEmpty(ops oracle.ServerOps, cond oracle.CT, ifString FheString) FheString {
	content := make([]oracle.CT, len(ifString.Content))
	zero := ops.TrivialEnc(0)
	for i, c := range ifString.Content {
		content[i] = ops.Cmux(cond, c, zero)
	}
	resultLength := MulByRadix(ops, ClearLength(0), cond)
	if v, ok := ifString.Length.Clear(); ok {
		resultLength = EncryptedLength(ops.ScalarMul(ops.BoolToRadix(cond), uint64(v)))
	} else {
		ec, _ := ifString.Length.Encrypted()
		resultLength = EncryptedLength(ops.Mul(ops.BoolToRadix(cond), ec))
	}
	padding := ifString.Padding
	if padding == PadNone {
		padding = PadFinal
	}
	return New(content, padding, resultLength)
}
