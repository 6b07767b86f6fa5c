// Package fheclient holds everything that touches plaintext: encrypting a
// Go string into an fhestring.FheString under one of three padding
// strategies, and decrypting a container back into a string or a single
// character. Grounded on original_source's client_key.rs.
package fheclient

import (
	"errors"
	"math/rand"
	"unicode/utf8"

	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/oracle"
)

// ErrNonASCII is a construction error: every byte of a plaintext string
// handed to this package must be in [0,127], since the content vector
// stores one ASCII octet per ciphertext and 0 is reserved as padding.
var ErrNonASCII = errors.New("fheclient: input contains a non-ASCII byte")

func validateASCII(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return ErrNonASCII
		}
	}
	return nil
}

func encryptBytes(ops oracle.ClientOps, b []byte) []oracle.CT {
	content := make([]oracle.CT, len(b))
	for i, c := range b {
		content[i] = ops.Enc(uint64(c))
	}
	return content
}

// EncryptStr encrypts s with no padding: content length equals len(s)
// exactly and the length field is clear.
func EncryptStr(ops oracle.ClientOps, s string) (fhestring.FheString, error) {
	if err := validateASCII(s); err != nil {
		return fhestring.FheString{}, err
	}
	return fhestring.New(encryptBytes(ops, []byte(s)), fhestring.PadNone, fhestring.ClearLength(len(s))), nil
}

// EncryptStrPadding encrypts s followed by paddingSize trailing null
// bytes. With paddingSize 0 this is identical to EncryptStr; otherwise
// the true length is hidden behind an encrypted integer and the padding
// tag becomes Final.
func EncryptStrPadding(ops oracle.ClientOps, s string, paddingSize int) (fhestring.FheString, error) {
	if err := validateASCII(s); err != nil {
		return fhestring.FheString{}, err
	}
	if paddingSize == 0 {
		return EncryptStr(ops, s)
	}
	padded := append([]byte(s), make([]byte, paddingSize)...)
	length := fhestring.EncryptedLength(ops.Enc(uint64(len(s))))
	return fhestring.New(encryptBytes(ops, padded), fhestring.PadFinal, length), nil
}

// EncryptStrRandomPadding encrypts s interleaved with paddingSize null
// bytes scattered throughout the content vector, producing the Anywhere
// padding tag: an adversary who only sees content length and padding tag
// learns nothing about where in the vector the true bytes sit. Grounded
// on client_key.rs's randomly_null_padded_vec_from_str.
func EncryptStrRandomPadding(ops oracle.ClientOps, s string, paddingSize int) (fhestring.FheString, error) {
	if err := validateASCII(s); err != nil {
		return fhestring.FheString{}, err
	}
	if paddingSize == 0 {
		return EncryptStr(ops, s)
	}
	padded := randomlyNullPadded(s, paddingSize)
	length := fhestring.EncryptedLength(ops.Enc(uint64(len(s))))
	return fhestring.New(encryptBytes(ops, padded), fhestring.PadAnywhere, length), nil
}

func randomlyNullPadded(s string, paddingSize int) []byte {
	n := len(s) + paddingSize
	out := make([]byte, 0, n)
	sIndex := 0
	paddingPlaced := 0
	for i := 0; i < n; i++ {
		choice := rand.Intn(n)
		if (choice < len(s) || paddingPlaced == paddingSize) && sIndex < len(s) {
			out = append(out, s[sIndex])
			sIndex++
		} else {
			out = append(out, 0)
			paddingPlaced++
		}
	}
	return out
}

// EncryptChar encrypts a single ASCII character.
func EncryptChar(ops oracle.ClientOps, c byte) (oracle.CT, error) {
	if c > 127 {
		return nil, ErrNonASCII
	}
	return ops.Enc(uint64(c)), nil
}

// DecryptU8 decrypts a single encrypted byte.
func DecryptU8(ops oracle.ClientOps, c oracle.CT) uint8 {
	return ops.DecryptU8(c)
}

// DecryptChar decrypts a single encrypted character.
func DecryptChar(ops oracle.ClientOps, c oracle.CT) byte {
	return ops.DecryptU8(c)
}

// DecryptString decrypts every content byte of s, filters out null bytes
// regardless of where the padding tag says they can occur, and decodes
// the remainder as UTF-8.
func DecryptString(ops oracle.ClientOps, s fhestring.FheString) (string, error) {
	out := make([]byte, 0, len(s.Content))
	for _, c := range s.Content {
		b := ops.DecryptU8(c)
		if b != 0 {
			out = append(out, b)
		}
	}
	if !utf8.Valid(out) {
		return "", errors.New("fheclient: decrypted content is not valid UTF-8")
	}
	return string(out), nil
}
