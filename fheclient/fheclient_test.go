package fheclient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptlab/fhestrings/fheclient"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/internal/simfhe"
)

func TestEncryptStrRoundTrip(t *testing.T) {
	client, _ := simfhe.GenKeys()
	s, err := fheclient.EncryptStr(client, "hello")
	require.NoError(t, err)
	require.Equal(t, fhestring.PadNone, s.Padding)

	decoded, err := fheclient.DecryptString(client, s)
	require.NoError(t, err)
	require.Equal(t, "hello", decoded)
}

func TestEncryptStrNonASCII(t *testing.T) {
	client, _ := simfhe.GenKeys()
	_, err := fheclient.EncryptStr(client, "héllo")
	require.ErrorIs(t, err, fheclient.ErrNonASCII)
}

func TestEncryptStrPadding(t *testing.T) {
	client, _ := simfhe.GenKeys()
	s, err := fheclient.EncryptStrPadding(client, "hi", 3)
	require.NoError(t, err)
	require.Equal(t, fhestring.PadFinal, s.Padding)
	require.Len(t, s.Content, 5)

	decoded, err := fheclient.DecryptString(client, s)
	require.NoError(t, err)
	require.Equal(t, "hi", decoded)
}

func TestEncryptStrPaddingZeroIsPlain(t *testing.T) {
	client, _ := simfhe.GenKeys()
	s, err := fheclient.EncryptStrPadding(client, "hi", 0)
	require.NoError(t, err)
	require.Equal(t, fhestring.PadNone, s.Padding)
}

func TestEncryptStrRandomPadding(t *testing.T) {
	client, _ := simfhe.GenKeys()
	s, err := fheclient.EncryptStrRandomPadding(client, "hi", 4)
	require.NoError(t, err)
	require.Equal(t, fhestring.PadAnywhere, s.Padding)
	require.Len(t, s.Content, 6)

	decoded, err := fheclient.DecryptString(client, s)
	require.NoError(t, err)
	require.Equal(t, "hi", decoded)
}

func TestEncryptCharRoundTrip(t *testing.T) {
	client, _ := simfhe.GenKeys()
	ct, err := fheclient.EncryptChar(client, 'z')
	require.NoError(t, err)
	require.Equal(t, byte('z'), fheclient.DecryptChar(client, ct))
}

func TestEncryptCharNonASCII(t *testing.T) {
	client, _ := simfhe.GenKeys()
	_, err := fheclient.EncryptChar(client, 200)
	require.ErrorIs(t, err, fheclient.ErrNonASCII)
}
