package harness

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccess checks that taxsync exited 0.
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Zero(tb, result.ExitCode, "taxsync exited %d\n%s", result.ExitCode, result)
}

// AssertFailure checks that taxsync exited non-zero.
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.NotZero(tb, result.ExitCode, "taxsync unexpectedly succeeded\n%s", result)
}

// AssertExitCode checks the exact exit code.
func AssertExitCode(tb testing.TB, result CommandResult, expected int) {
	tb.Helper()
	assert.Equal(tb, expected, result.ExitCode, "unexpected exit code\n%s", result)
}

// AssertStdoutContains checks that stdout mentions expected.
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected, "stdout is missing %q\n%s", expected, result)
}

// AssertStderrContains checks that stderr mentions expected.
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected, "stderr is missing %q\n%s", expected, result)
}

// AssertStdoutEmpty checks that nothing but whitespace reached stdout.
func AssertStdoutEmpty(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Empty(tb, strings.TrimSpace(result.Stdout), "stdout should be empty\n%s", result)
}

// AssertValidJSON decodes stdout into target.
func AssertValidJSON(tb testing.TB, result CommandResult, target any) {
	tb.Helper()
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), target), "stdout is not JSON\n%s", result)
}

// AssertJSONContains checks a top-level field of a JSON object on stdout.
func AssertJSONContains(tb testing.TB, result CommandResult, key string, expected any) {
	tb.Helper()
	var data map[string]any
	AssertValidJSON(tb, result, &data)
	assert.Equal(tb, expected, data[key], "JSON field %q", key)
}

// AssertErrorKind checks the error kind reported by a publish run printed as JSON.
func AssertErrorKind(tb testing.TB, result CommandResult, kind string) {
	tb.Helper()
	var out struct {
		Error *struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	AssertValidJSON(tb, result, &out)
	require.NotNil(tb, out.Error, "no error reported\n%s", result)
	assert.Equal(tb, kind, out.Error.Kind)
}
