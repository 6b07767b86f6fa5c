// Package oracle declares the capability surface this module consumes from
// an FHE integer scheme, and nothing more. Everything above this package
// treats ServerOps and ClientOps as opaque: no component outside oracle and
// its reference backend (internal/simfhe) may assume anything about CT's
// concrete representation.
package oracle

// CT is an opaque ciphertext handle. Its concrete type is owned by whichever
// backend implements ServerOps/ClientOps; library code only ever passes CT
// values around and hands them back to the same ops implementation.
type CT interface{}

// ServerOps is the public evaluation material: everything a party holding
// only the server key can do to encrypted unsigned integers. Every
// data-dependent branch in this module collapses to a Cmux call against this
// interface.
type ServerOps interface {
	Enc(v uint64) CT
	TrivialEnc(v uint64) CT

	Add(a, b CT) CT
	ScalarAdd(a CT, s uint64) CT
	Sub(a, b CT) CT
	ScalarSub(a CT, s uint64) CT
	Mul(a, b CT) CT
	ScalarMul(a CT, s uint64) CT
	Neg(a CT) CT

	Eq(a, b CT) CT
	ScalarEq(a CT, s uint64) CT
	Ne(a, b CT) CT
	ScalarNe(a CT, s uint64) CT
	Lt(a, b CT) CT
	ScalarLt(a CT, s uint64) CT
	Le(a, b CT) CT
	ScalarLe(a CT, s uint64) CT
	Gt(a, b CT) CT
	ScalarGt(a CT, s uint64) CT
	Ge(a, b CT) CT
	ScalarGe(a CT, s uint64) CT

	And(a, b CT) CT
	Or(a, b CT) CT
	Not(a CT) CT
	Xor(a, b CT) CT

	Min(a, b CT) CT
	Max(a, b CT) CT

	// Cmux returns an encryption of x if b decrypts to 1, else y. b must be a
	// boolean ciphertext (a CT known to encrypt 0 or 1).
	Cmux(b, x, y CT) CT

	// BoolToRadix widens a boolean ciphertext to the radix width used for
	// indices and lengths.
	BoolToRadix(b CT) CT
}

// ClientOps is everything the holder of the secret key can do: encrypt and
// decrypt. A server never sees a ClientOps value.
type ClientOps interface {
	Enc(v uint64) CT
	DecryptU8(c CT) uint8
	DecryptU32(c CT) uint32
	DecryptBool(c CT) bool
}
