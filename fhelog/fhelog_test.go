package fhelog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptlab/fhestrings/fhelog"
)

func TestSetLevelValid(t *testing.T) {
	require.NoError(t, fhelog.SetLevel("debug"))
	require.NoError(t, fhelog.SetLevel("info"))
}

func TestSetLevelInvalid(t *testing.T) {
	require.Error(t, fhelog.SetLevel("not-a-level"))
}

func TestWithFieldDoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		fhelog.WithField("operation", "find").Info("ran")
	})
}
