package fhestring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/internal/simfhe"
)

func TestLengthClearEncryptedRoundTrip(t *testing.T) {
	client, server := simfhe.GenKeys()

	clear := fhestring.ClearLength(5)
	n, ok := clear.Clear()
	require.True(t, ok)
	require.Equal(t, 5, n)
	_, ok = clear.Encrypted()
	require.False(t, ok)
	require.EqualValues(t, 5, client.DecryptU32(clear.ToEncrypted(server)))

	encrypted := fhestring.EncryptedLength(server.TrivialEnc(7))
	ec, ok := encrypted.Encrypted()
	require.True(t, ok)
	require.EqualValues(t, 7, client.DecryptU32(ec))
	_, ok = encrypted.Clear()
	require.False(t, ok)
}

func TestAddScalar(t *testing.T) {
	client, server := simfhe.GenKeys()

	clearResult := fhestring.AddScalar(server, fhestring.ClearLength(3), 2)
	n, ok := clearResult.Clear()
	require.True(t, ok)
	require.Equal(t, 5, n)

	encResult := fhestring.AddScalar(server, fhestring.EncryptedLength(server.TrivialEnc(3)), 2)
	ec, ok := encResult.Encrypted()
	require.True(t, ok)
	require.EqualValues(t, 5, client.DecryptU32(ec))
}

func TestSubScalarClamped(t *testing.T) {
	result := fhestring.SubScalarClamped(nil, fhestring.ClearLength(2), 5)
	n, ok := result.Clear()
	require.True(t, ok)
	require.Equal(t, 0, n)
}

func TestAddPromotesToEncryptedOnlyWhenNeeded(t *testing.T) {
	client, server := simfhe.GenKeys()

	bothClear := fhestring.Add(server, fhestring.ClearLength(2), fhestring.ClearLength(3))
	n, ok := bothClear.Clear()
	require.True(t, ok)
	require.Equal(t, 5, n)

	mixed := fhestring.Add(server, fhestring.ClearLength(2), fhestring.EncryptedLength(server.TrivialEnc(3)))
	_, ok = mixed.Clear()
	require.False(t, ok)
	ec, _ := mixed.Encrypted()
	require.EqualValues(t, 5, client.DecryptU32(ec))
}

func TestMulByRadix(t *testing.T) {
	client, server := simfhe.GenKeys()
	result := fhestring.MulByRadix(server, fhestring.ClearLength(4), server.TrivialEnc(3))
	ec, ok := result.Encrypted()
	require.True(t, ok)
	require.EqualValues(t, 12, client.DecryptU32(ec))
}

func TestClampToCapacity(t *testing.T) {
	result := fhestring.ClampToCapacity(nil, fhestring.ClearLength(9), 4)
	n, ok := result.Clear()
	require.True(t, ok)
	require.Equal(t, 4, n)
}
