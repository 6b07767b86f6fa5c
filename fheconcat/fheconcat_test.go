package fheconcat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptlab/fhestrings/fheconcat"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/internal/simfhe"
	"github.com/cryptlab/fhestrings/oracle"
)

func encrypt(ops oracle.ClientOps, bs ...byte) []oracle.CT {
	out := make([]oracle.CT, len(bs))
	for i, b := range bs {
		out[i] = ops.Enc(uint64(b))
	}
	return out
}

func plainString(client oracle.ClientOps, s string) fhestring.FheString {
	return fhestring.New(encrypt(client, []byte(s)...), fhestring.PadNone, fhestring.ClearLength(len(s)))
}

func decryptString(client oracle.ClientOps, s fhestring.FheString) string {
	out := make([]byte, 0, len(s.Content))
	for _, c := range s.Content {
		b := client.DecryptU8(c)
		if b != 0 {
			out = append(out, b)
		}
	}
	return string(out)
}

func TestConcat(t *testing.T) {
	client, server := simfhe.GenKeys()
	a := plainString(client, "foo")
	b := plainString(client, "bar")

	result := fheconcat.Concat(server, a, b)
	require.Equal(t, "foobar", decryptString(client, result))
	require.EqualValues(t, 6, client.DecryptU32(result.Length.ToEncrypted(server)))
}

func TestConcatClearAndChar(t *testing.T) {
	client, server := simfhe.GenKeys()
	a := plainString(client, "foo")

	result := fheconcat.ConcatClear(server, a, "bar")
	require.Equal(t, "foobar", decryptString(client, result))

	withChar := fheconcat.ConcatChar(server, a, server.TrivialEnc(uint64('!')))
	require.Equal(t, "foo!", decryptString(client, withChar))
}

func TestSubstringClear(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "hello world")

	ok, result, err := fheconcat.SubstringClear(server, s, 6, 11)
	require.NoError(t, err)
	require.True(t, client.DecryptBool(ok))
	require.Equal(t, "world", decryptString(client, result))
}

func TestSubstringClearOutOfRange(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "hi")

	_, _, err := fheconcat.SubstringClear(server, s, 0, 99)
	require.ErrorIs(t, err, fheconcat.ErrOutOfRange)
}

func TestSubstringEncrypted(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "hello world")

	ok, result := fheconcat.SubstringEncrypted(server, s, server.TrivialEnc(0), server.TrivialEnc(5))
	require.True(t, client.DecryptBool(ok))
	require.Equal(t, "hello", decryptString(client, result))
}

func TestRepeatClear(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "ab")

	result := fheconcat.RepeatClear(server, s, 3)
	require.Equal(t, "ababab", decryptString(client, result))
}

func TestRepeatEncrypted(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "ab")

	result := fheconcat.RepeatEncrypted(server, s, server.TrivialEnc(2), 4)
	require.Equal(t, "abab", decryptString(client, result))
	require.EqualValues(t, 4, client.DecryptU32(result.Length.ToEncrypted(server)))
}
