package simfhe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptlab/fhestrings/internal/simfhe"
	"github.com/cryptlab/fhestrings/oracle"
)

func TestArithmeticAndComparisons(t *testing.T) {
	client, server := simfhe.GenKeys()
	a := server.Enc(5)
	b := server.Enc(3)

	require.EqualValues(t, 8, client.DecryptU8(server.Add(a, b)))
	require.EqualValues(t, 2, client.DecryptU8(server.Sub(a, b)))
	require.EqualValues(t, 0, client.DecryptU8(server.Sub(b, a)))
	require.True(t, client.DecryptBool(server.Gt(a, b)))
	require.False(t, client.DecryptBool(server.Lt(a, b)))
}

func TestCmuxAndBooleanOps(t *testing.T) {
	client, server := simfhe.GenKeys()
	tru := server.Enc(1)
	fls := server.Enc(0)
	x := server.Enc(10)
	y := server.Enc(20)

	require.EqualValues(t, 10, client.DecryptU8(server.Cmux(tru, x, y)))
	require.EqualValues(t, 20, client.DecryptU8(server.Cmux(fls, x, y)))
	require.True(t, client.DecryptBool(server.And(tru, tru)))
	require.False(t, client.DecryptBool(server.And(tru, fls)))
	require.True(t, client.DecryptBool(server.Or(fls, tru)))
	require.True(t, client.DecryptBool(server.Not(fls)))
}

func TestForeignCTPanics(t *testing.T) {
	_, server := simfhe.GenKeys()
	require.Panics(t, func() {
		server.Add(fakeCT{}, server.Enc(1))
	})
}

type fakeCT struct{}

func TestMapParallel(t *testing.T) {
	_, server := simfhe.GenKeys()
	in := make([]oracle.CT, 10)
	for i := range in {
		in[i] = server.Enc(uint64(i))
	}

	out := simfhe.MapParallel(in, func(c oracle.CT) oracle.CT {
		return server.ScalarAdd(c, 100)
	})

	client, _ := simfhe.GenKeys()
	for i, c := range out {
		require.EqualValues(t, 100+i, client.DecryptU32(c))
	}
}
