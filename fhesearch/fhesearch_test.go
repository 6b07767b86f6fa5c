package fhesearch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptlab/fhestrings/fhepattern"
	"github.com/cryptlab/fhestrings/fhesearch"
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

func TestFindRfind(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "banana")
	pattern := fhepattern.NewClearString("an")

	found, index := fhesearch.Find(server, s, pattern)
	require.True(t, client.DecryptBool(found))
	require.EqualValues(t, 1, client.DecryptU32(index))

	rfound, rindex := fhesearch.Rfind(server, s, pattern)
	require.True(t, client.DecryptBool(rfound))
	require.EqualValues(t, 3, client.DecryptU32(rindex))
}

func TestFindRfindEmptyPattern(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "abc")
	pattern := fhepattern.NewClearString("")

	found, index := fhesearch.Find(server, s, pattern)
	require.True(t, client.DecryptBool(found))
	require.EqualValues(t, 0, client.DecryptU32(index))

	rfound, rindex := fhesearch.Rfind(server, s, pattern)
	require.True(t, client.DecryptBool(rfound))
	require.EqualValues(t, 3, client.DecryptU32(rindex))
}

func TestContainsAndStartsEndsWith(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "hello world")

	require.True(t, client.DecryptBool(fhesearch.Contains(server, s, fhepattern.NewClearString("lo wo"))))
	require.False(t, client.DecryptBool(fhesearch.Contains(server, s, fhepattern.NewClearString("xyz"))))
	require.True(t, client.DecryptBool(fhesearch.StartsWith(server, s, fhepattern.NewClearString("hello"))))
	require.True(t, client.DecryptBool(fhesearch.EndsWith(server, s, fhepattern.NewClearString("world"))))
	require.False(t, client.DecryptBool(fhesearch.EndsWith(server, s, fhepattern.NewClearString("hello"))))
}

func TestStripPrefixMatch(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "foobar")

	matched, stripped := fhesearch.StripPrefix(server, s, fhepattern.NewClearString("foo"))
	require.True(t, client.DecryptBool(matched))

	ec, ok := stripped.Length.Encrypted()
	require.True(t, ok)
	require.EqualValues(t, 3, client.DecryptU32(ec))
	require.Equal(t, byte('b'), client.DecryptU8(stripped.Content[0]))
	require.Equal(t, byte('a'), client.DecryptU8(stripped.Content[1]))
	require.Equal(t, byte('r'), client.DecryptU8(stripped.Content[2]))
}

func TestStripPrefixNoMatch(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "foobar")

	matched, _ := fhesearch.StripPrefix(server, s, fhepattern.NewClearString("xyz"))
	require.False(t, client.DecryptBool(matched))
}

func TestStripSuffixMatch(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "foobar")

	matched, stripped := fhesearch.StripSuffix(server, s, fhepattern.NewClearString("bar"))
	require.True(t, client.DecryptBool(matched))
	require.Equal(t, fhestring.PadInitial, stripped.Padding)

	n := len(stripped.Content)
	require.Equal(t, byte('f'), client.DecryptU8(stripped.Content[n-3]))
	require.Equal(t, byte('o'), client.DecryptU8(stripped.Content[n-2]))
	require.Equal(t, byte('o'), client.DecryptU8(stripped.Content[n-1]))
}
