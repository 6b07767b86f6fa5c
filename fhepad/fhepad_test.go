package fhepad_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptlab/fhestrings/fhepad"
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

func decrypt(ops oracle.ClientOps, content []oracle.CT) []byte {
	out := make([]byte, len(content))
	for i, c := range content {
		out[i] = ops.DecryptU8(c)
	}
	return out
}

func TestPushPaddingToEndFromAnywhere(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := fhestring.New(encrypt(client, 0, 'a', 0, 'b', 'c', 0), fhestring.PadAnywhere, fhestring.ClearLength(3))

	result := fhepad.PushPaddingToEnd(server, s)
	require.Equal(t, fhestring.PadFinal, result.Padding)
	require.Equal(t, []byte{'a', 'b', 'c', 0, 0, 0}, decrypt(client, result.Content))
}

func TestPushPaddingToStartFromAnywhere(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := fhestring.New(encrypt(client, 0, 'a', 0, 'b', 'c', 0), fhestring.PadAnywhere, fhestring.ClearLength(3))

	result := fhepad.PushPaddingToStart(server, s)
	require.Equal(t, fhestring.PadInitial, result.Padding)
	require.Equal(t, []byte{0, 0, 0, 'a', 'b', 'c'}, decrypt(client, result.Content))
}

func TestRemoveInitialPadding(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := fhestring.New(encrypt(client, 0, 0, 'a', 'b', 'c'), fhestring.PadInitial, fhestring.ClearLength(3))

	result := fhepad.RemoveInitialPadding(server, s)
	require.Equal(t, fhestring.PadFinal, result.Padding)
	require.Equal(t, []byte{'a', 'b', 'c', 0, 0}, decrypt(client, result.Content))
}

func TestRemoveFinalPadding(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := fhestring.New(encrypt(client, 'a', 'b', 'c', 0, 0), fhestring.PadFinal, fhestring.ClearLength(3))

	result := fhepad.RemoveFinalPadding(server, s)
	require.Equal(t, fhestring.PadInitial, result.Padding)
	require.Equal(t, []byte{0, 0, 'a', 'b', 'c'}, decrypt(client, result.Content))
}

func TestRemoveInitialPaddingNoopOnFinal(t *testing.T) {
	client, server := simfhe.GenKeys()
	s := fhestring.New(encrypt(client, 'a', 'b', 0), fhestring.PadFinal, fhestring.ClearLength(2))

	result := fhepad.RemoveInitialPadding(server, s)
	require.Equal(t, fhestring.PadFinal, result.Padding)
	require.Equal(t, []byte{'a', 'b', 0}, decrypt(client, result.Content))
}
