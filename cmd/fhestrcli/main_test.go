package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	f()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRunFind(t *testing.T) {
	var code int
	out := captureStdout(t, func() {
		code = run([]string{"hello world", "world", "--operation", "find"})
	})
	require.Equal(t, 0, code)
	require.Contains(t, out, "found at")
}

func TestRunContainsNoMatch(t *testing.T) {
	var code int
	out := captureStdout(t, func() {
		code = run([]string{"hello world", "xyz", "--operation", "contains"})
	})
	require.Equal(t, 0, code)
	require.Contains(t, out, "false")
}

func TestRunReplace(t *testing.T) {
	var code int
	out := captureStdout(t, func() {
		code = run([]string{"a,b,c", ",", "--operation", "replace", "--char-pattern", ",", "--replace-pattern", "-"})
	})
	require.Equal(t, 0, code)
	require.Contains(t, out, "a-b-c")
}

func TestRunUnknownOperation(t *testing.T) {
	code := run([]string{"foo", "bar", "--operation", "bogus"})
	require.Equal(t, 2, code)
}

func TestBuildPatternCharOverride(t *testing.T) {
	args := &arguments{pattern: "xyz", charPattern: "x"}
	pattern, err := buildPattern(args)
	require.NoError(t, err)
	require.NotNil(t, pattern)
}

func TestRunInvalidLogLevel(t *testing.T) {
	code := run([]string{"foo", "bar", "--log-level", "not-a-level"})
	require.Equal(t, 2, code)
}

func TestRunRequiresTwoArgs(t *testing.T) {
	code := run([]string{"onlyone"})
	require.Equal(t, 2, code)
}

func TestRunSplit(t *testing.T) {
	var code int
	out := captureStdout(t, func() {
		code = run([]string{"a,b,c", ",", "--operation", "split", "--char-pattern", ","})
	})
	require.Equal(t, 0, code)
	require.True(t, strings.Contains(out, `3 parts`))
}
