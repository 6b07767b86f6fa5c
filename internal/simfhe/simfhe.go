// Package simfhe is a cleartext stand-in for an FHE backend. It implements
// oracle.ServerOps and oracle.ClientOps by storing plaintext values directly
// inside the CT handle: there is no encryption, no noise budget, and no
// confidentiality whatsoever.
//
// It exists only so the oblivious algorithms in fhebyte..fhereplace can be
// exercised and checked against plaintext semantics. Nothing in this
// package should be mistaken for, or ever wired in place of, a real
// lattice-based FHE scheme. cmd/fhestrcli prints a warning to this effect
// before it uses this package.
package simfhe

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cryptlab/fhestrings/oracle"
)

// ct is the concrete ciphertext representation: a bare plaintext value.
// Unexported so nothing outside this package can construct or inspect one
// without going through Backend/ClientKey.
type ct struct {
	v uint64
}

func val(c oracle.CT) uint64 {
	cc, ok := c.(ct)
	if !ok {
		panic(fmt.Sprintf("simfhe: foreign CT value of type %T", c))
	}
	return cc.v
}

func boolOf(c oracle.CT) bool {
	return val(c) != 0
}

func fromBool(b bool) ct {
	if b {
		return ct{v: 1}
	}
	return ct{v: 0}
}

// Backend implements oracle.ServerOps over the cleartext ct representation.
type Backend struct{}

// NewBackend returns a reference ServerOps implementation for tests and for
// the demonstration CLI. See the package doc comment: it is not secure.
func NewBackend() *Backend { return &Backend{} }

func (*Backend) Enc(v uint64) oracle.CT        { return ct{v: v} }
func (*Backend) TrivialEnc(v uint64) oracle.CT { return ct{v: v} }

func (*Backend) Add(a, b oracle.CT) oracle.CT        { return ct{v: val(a) + val(b)} }
func (*Backend) ScalarAdd(a oracle.CT, s uint64) oracle.CT { return ct{v: val(a) + s} }
func (*Backend) Sub(a, b oracle.CT) oracle.CT {
	av, bv := val(a), val(b)
	if bv > av {
		return ct{v: 0}
	}
	return ct{v: av - bv}
}
func (*Backend) ScalarSub(a oracle.CT, s uint64) oracle.CT {
	av := val(a)
	if s > av {
		return ct{v: 0}
	}
	return ct{v: av - s}
}
func (*Backend) Mul(a, b oracle.CT) oracle.CT        { return ct{v: val(a) * val(b)} }
func (*Backend) ScalarMul(a oracle.CT, s uint64) oracle.CT { return ct{v: val(a) * s} }
// Neg wraps modulo 2^64, matching how a fixed-width radix ciphertext wraps
// on negation; this module never decrypts a negated value as signed.
func (*Backend) Neg(a oracle.CT) oracle.CT { return ct{v: 0 - val(a)} }

func (*Backend) Eq(a, b oracle.CT) oracle.CT        { return fromBool(val(a) == val(b)) }
func (*Backend) ScalarEq(a oracle.CT, s uint64) oracle.CT { return fromBool(val(a) == s) }
func (*Backend) Ne(a, b oracle.CT) oracle.CT        { return fromBool(val(a) != val(b)) }
func (*Backend) ScalarNe(a oracle.CT, s uint64) oracle.CT { return fromBool(val(a) != s) }
func (*Backend) Lt(a, b oracle.CT) oracle.CT        { return fromBool(val(a) < val(b)) }
func (*Backend) ScalarLt(a oracle.CT, s uint64) oracle.CT { return fromBool(val(a) < s) }
func (*Backend) Le(a, b oracle.CT) oracle.CT        { return fromBool(val(a) <= val(b)) }
func (*Backend) ScalarLe(a oracle.CT, s uint64) oracle.CT { return fromBool(val(a) <= s) }
func (*Backend) Gt(a, b oracle.CT) oracle.CT        { return fromBool(val(a) > val(b)) }
func (*Backend) ScalarGt(a oracle.CT, s uint64) oracle.CT { return fromBool(val(a) > s) }
func (*Backend) Ge(a, b oracle.CT) oracle.CT        { return fromBool(val(a) >= val(b)) }
func (*Backend) ScalarGe(a oracle.CT, s uint64) oracle.CT { return fromBool(val(a) >= s) }

func (*Backend) And(a, b oracle.CT) oracle.CT { return fromBool(boolOf(a) && boolOf(b)) }
func (*Backend) Or(a, b oracle.CT) oracle.CT  { return fromBool(boolOf(a) || boolOf(b)) }
func (*Backend) Not(a oracle.CT) oracle.CT    { return fromBool(!boolOf(a)) }
func (*Backend) Xor(a, b oracle.CT) oracle.CT { return fromBool(boolOf(a) != boolOf(b)) }

func (*Backend) Min(a, b oracle.CT) oracle.CT {
	if val(a) < val(b) {
		return a
	}
	return b
}
func (*Backend) Max(a, b oracle.CT) oracle.CT {
	if val(a) > val(b) {
		return a
	}
	return b
}

func (*Backend) Cmux(b, x, y oracle.CT) oracle.CT {
	if boolOf(b) {
		return x
	}
	return y
}

func (*Backend) BoolToRadix(b oracle.CT) oracle.CT { return ct{v: val(b)} }

// MapParallel applies f to every element of cts concurrently and returns the
// results in order. It models the FHE oracle's "parallelized" call
// variants: the arithmetic behind each element is independent of the
// others, so a real backend would fan these out over its own worker pool.
// No other package in this module calls it: the algorithm packages run
// their position-by-position passes as plain sequential loops.
func MapParallel(cts []oracle.CT, f func(oracle.CT) oracle.CT) []oracle.CT {
	out := make([]oracle.CT, len(cts))
	var g errgroup.Group
	for i, c := range cts {
		i, c := i, c
		g.Go(func() error {
			out[i] = f(c)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ClientKey implements oracle.ClientOps over the cleartext ct representation.
type ClientKey struct{}

// NewClientKey returns a reference ClientOps implementation.
func NewClientKey() *ClientKey { return &ClientKey{} }

func (*ClientKey) Enc(v uint64) oracle.CT { return ct{v: v} }
func (*ClientKey) DecryptU8(c oracle.CT) uint8 { return uint8(val(c)) }
func (*ClientKey) DecryptU32(c oracle.CT) uint32 { return uint32(val(c)) }
func (*ClientKey) DecryptBool(c oracle.CT) bool { return boolOf(c) }

// GenKeys mirrors the teacher corpus's gen_keys helpers (original_source's
// ciphertext.rs gen_keys): a single call site that stands up a matched
// server/client pair, here trivial because simfhe has no real key material.
func GenKeys() (*ClientKey, *Backend) {
	return NewClientKey(), NewBackend()
}
