package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestLoadSettingsFrom_MissingFile(t *testing.T) {
	s, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "missing.json"))

	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoadSettingsFrom_ParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
  "default_branch": "trunk",
  "publish_timeout_seconds": 30,
  "walk_concurrency": 2,
  "source_repo": "/repos/local",
  "target_repo": "/repos/remote"
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "trunk", s.DefaultBranch)
	assert.Equal(t, "/repos/local", s.SourceRepo)
	assert.Equal(t, "/repos/remote", s.TargetRepo)

	e := s.Engine()
	assert.Equal(t, "trunk", e.DefaultBranch)
	assert.Equal(t, 30*time.Second, e.PublishTimeout)
	assert.Equal(t, 2, e.WalkConcurrency)
}

func TestLoadSettingsFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := LoadSettingsFrom(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings.json")
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"empty", Settings{}, false},
		{"valid branch", Settings{DefaultBranch: "main"}, false},
		{"branch with space", Settings{DefaultBranch: "my branch"}, true},
		{"negative timeout", Settings{PublishTimeoutSeconds: intPtr(-1)}, true},
		{"negative concurrency", Settings{WalkConcurrency: intPtr(-3)}, true},
		{"negative log files", Settings{MaxLogFiles: intPtr(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEngine_DefaultsForZeroValues(t *testing.T) {
	s := &Settings{PublishTimeoutSeconds: intPtr(0), WalkConcurrency: intPtr(0)}

	e := s.Engine()

	assert.Equal(t, DefaultBranch, e.DefaultBranch)
	assert.Equal(t, DefaultPublishTimeoutSeconds*time.Second, e.PublishTimeout)
	assert.Equal(t, DefaultWalkConcurrency, e.WalkConcurrency)
}

func TestEngine_NilSettings(t *testing.T) {
	var s *Settings
	assert.Equal(t, DefaultEngine(), s.Engine())
}

func TestGetHome_UsesEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TAXSYNC_HOME", dir)

	assert.Equal(t, dir, GetHome())
	assert.Equal(t, filepath.Join(dir, "history.db"), GetDBPath())
	assert.Equal(t, filepath.Join(dir, "locks"), GetLockDir())
	assert.Equal(t, filepath.Join(dir, "settings.json"), GetSettingsPath())
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	t.Setenv("TAXSYNC_HOME", t.TempDir())
	in := &Settings{DefaultBranch: "main", WalkConcurrency: intPtr(4)}

	require.NoError(t, SaveSettings(in))
	out, err := LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, "main", out.DefaultBranch)
	require.NotNil(t, out.WalkConcurrency)
	assert.Equal(t, 4, *out.WalkConcurrency)
}

func TestGetSettingsExample_CoversAllFields(t *testing.T) {
	example := GetSettingsExample()

	for _, key := range []string{"debug", "default_branch", "lock_dir", "max_log_files",
		"publish_timeout_seconds", "source_repo", "target_repo", "walk_concurrency"} {
		assert.Contains(t, example, key)
	}
	assert.Equal(t, DefaultBranch, example["default_branch"])
}
