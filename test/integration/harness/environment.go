package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own TAXSYNC_HOME.
type TestEnvironment struct {
	Home     string
	extraEnv map[string]string
	tb       testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp TAXSYNC_HOME.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		Home:     tb.TempDir(),
		extraEnv: make(map[string]string),
		tb:       tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out TAXSYNC_* variables and sets:
//   - TAXSYNC_HOME to the temp directory
//   - TAXSYNC_DEBUG to empty string (disables debug logging)
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+2+len(e.extraEnv))

	// Filter out existing TAXSYNC_* variables and any we're overriding
	for _, kv := range os.Environ() {
		key := strings.SplitN(kv, "=", 2)[0]
		if strings.HasPrefix(key, "TAXSYNC_") {
			continue
		}
		if _, overridden := e.extraEnv[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"TAXSYNC_HOME="+e.Home,
		"TAXSYNC_DEBUG=",
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the test history database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.Home, "history.db")
}

// SettingsPath returns the path to the test settings file.
func (e *TestEnvironment) SettingsPath() string {
	return filepath.Join(e.Home, "settings.json")
}

// WriteSettings writes raw JSON to the test settings file.
func (e *TestEnvironment) WriteSettings(json string) {
	e.tb.Helper()
	if err := os.WriteFile(e.SettingsPath(), []byte(json), 0644); err != nil {
		e.tb.Fatalf("Failed to write settings: %v", err)
	}
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}
