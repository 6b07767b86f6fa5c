package fhesplit_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cryptlab/fhestrings/fhepattern"
	"github.com/cryptlab/fhestrings/fhesplit"
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

func partsUpTo(client oracle.ClientOps, res fhesplit.Result) []string {
	n := int(client.DecryptU32(res.NumberParts))
	out := make([]string, 0, n)
	for i := 0; i < n && i < len(res.Parts); i++ {
		out = append(out, decryptString(client, res.Parts[i]))
	}
	return out
}

func TestSplit(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "a,b,,c")
	pattern := fhepattern.NewClearChar(',')

	result := fhesplit.Split(server, s, pattern)
	want := []string{"a", "b", "", "c"}
	if diff := cmp.Diff(want, partsUpTo(client, result)); diff != "" {
		t.Errorf("Split parts mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitEmptyPattern(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "abc")
	pattern := fhepattern.NewClearString("")

	result := fhesplit.Split(server, s, pattern)
	require.Equal(t, []string{"", "a", "b", "c", ""}, partsUpTo(client, result))
}

func TestRSplitEmptyPattern(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "abc")
	pattern := fhepattern.NewClearString("")

	result := fhesplit.RSplit(server, s, pattern)
	require.Equal(t, []string{"", "c", "b", "a", ""}, partsUpTo(client, result))
}

func TestSplitPaddingSlotsAreEmpty(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "a,b,c")
	pattern := fhepattern.NewClearChar(',')

	result := fhesplit.Split(server, s, pattern)
	n := int(client.DecryptU32(result.NumberParts))
	require.Equal(t, 3, n)
	for i := n; i < len(result.Parts); i++ {
		require.Equal(t, "", decryptString(client, result.Parts[i]), "padding slot %d must decrypt empty", i)
	}
}

func TestRSplit(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "a,b,c")
	pattern := fhepattern.NewClearChar(',')

	result := fhesplit.RSplit(server, s, pattern)
	require.Equal(t, []string{"c", "b", "a"}, partsUpTo(client, result))
}

func TestSplitTerminator(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "a.b.c.")
	pattern := fhepattern.NewClearChar('.')

	result := fhesplit.SplitTerminator(server, s, pattern)
	require.Equal(t, []string{"a", "b", "c"}, partsUpTo(client, result))
}

func TestSplitInclusive(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "a.b.c")
	pattern := fhepattern.NewClearChar('.')

	result := fhesplit.SplitInclusive(server, s, pattern)
	require.Equal(t, []string{"a.", "b.", "c"}, partsUpTo(client, result))
}

func TestSplitAsciiWhitespace(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "  foo   bar baz  ")

	result := fhesplit.SplitAsciiWhitespace(server, s)
	require.Equal(t, []string{"foo", "bar", "baz"}, partsUpTo(client, result))
}

func TestSplitN(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := plainString(client, "a,b,c,d")
	pattern := fhepattern.NewClearChar(',')

	result := fhesplit.SplitN(server, s, pattern, fhestring.ClearLength(2), 4)
	require.Equal(t, []string{"a", "b,c,d"}, partsUpTo(client, result))
}

func TestMaxParts(t *testing.T) {
	require.Equal(t, 7, fhesplit.MaxParts(5))
}
