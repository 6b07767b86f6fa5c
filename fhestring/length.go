package fhestring

import "github.com/cryptlab/fhestrings/oracle"

// Length is the length field of an encrypted string: either a clear
// nonnegative integer (the true length is public) or an encrypted
// nonnegative integer (padding hides it). It is the "small integer field"
// stand-in for a sum type that spec.md §9 allows when the target language
// has none — Go doesn't, so Length carries both payloads and a tag.
type Length struct {
	clear     bool
	clearVal  int
	encrypted oracle.CT
}

// ClearLength builds a Length whose true value is public.
func ClearLength(n int) Length {
	return Length{clear: true, clearVal: n}
}

// EncryptedLength builds a Length whose true value is hidden behind an
// encrypted integer.
func EncryptedLength(c oracle.CT) Length {
	return Length{clear: false, encrypted: c}
}

// Clear returns (value, true) if l is a clear length, else (0, false).
func (l Length) Clear() (int, bool) {
	return l.clearVal, l.clear
}

// Encrypted returns (ciphertext, true) if l is an encrypted length, else
// (nil, false).
func (l Length) Encrypted() (oracle.CT, bool) {
	return l.encrypted, !l.clear
}

// ToEncrypted promotes l to an encrypted integer, trivially encrypting a
// clear value if necessary. Mixed clear/encrypted arithmetic always
// promotes to encrypted per spec.md §9's length discipline.
func (l Length) ToEncrypted(ops oracle.ServerOps) oracle.CT {
	if l.clear {
		return ops.TrivialEnc(uint64(l.clearVal))
	}
	return l.encrypted
}

// AddScalar returns l+n, staying clear if l was clear.
func AddScalar(ops oracle.ServerOps, l Length, n int) Length {
	if l.clear {
		return ClearLength(l.clearVal + n)
	}
	return EncryptedLength(ops.ScalarAdd(l.encrypted, uint64(n)))
}

// SubScalarClamped returns max(0, l-n), staying clear if l was clear.
func SubScalarClamped(ops oracle.ServerOps, l Length, n int) Length {
	if l.clear {
		v := l.clearVal - n
		if v < 0 {
			v = 0
		}
		return ClearLength(v)
	}
	return EncryptedLength(ops.ScalarSub(l.encrypted, uint64(n)))
}

// Add returns a+b, promoting to encrypted unless both operands are clear.
func Add(ops oracle.ServerOps, a, b Length) Length {
	if av, ok := a.Clear(); ok {
		if bv, ok := b.Clear(); ok {
			return ClearLength(av + bv)
		}
	}
	return EncryptedLength(ops.Add(a.ToEncrypted(ops), b.ToEncrypted(ops)))
}

// MulByRadix returns l*n for n an encrypted scalar, always producing an
// encrypted length (multiplying by a secret factor always hides the
// result, per fheconcat.RepeatEncrypted and fhereplace's multiply-by-count
// use).
func MulByRadix(ops oracle.ServerOps, l Length, n oracle.CT) Length {
	if v, ok := l.Clear(); ok {
		return EncryptedLength(ops.ScalarMul(n, uint64(v)))
	}
	ec, _ := l.Encrypted()
	return EncryptedLength(ops.Mul(n, ec))
}

// ClampToCapacity returns min(l, capacity), staying clear if l was clear.
func ClampToCapacity(ops oracle.ServerOps, l Length, capacity int) Length {
	if v, ok := l.Clear(); ok {
		if v > capacity {
			v = capacity
		}
		return ClearLength(v)
	}
	ec, _ := l.Encrypted()
	return EncryptedLength(ops.Min(ec, ops.TrivialEnc(uint64(capacity))))
}
