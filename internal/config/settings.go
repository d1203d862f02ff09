package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultBranch is the protected branch every contribution branch is cut from
	DefaultBranch = "main"
	// DefaultPublishTimeoutSeconds bounds a whole publish run
	DefaultPublishTimeoutSeconds = 120
	// DefaultWalkConcurrency bounds concurrent subtree reads during a tree walk
	DefaultWalkConcurrency = 8
)

// Settings represents the structure of $TAXSYNC_HOME/settings.json
type Settings struct {
	Debug                 *bool  `json:"debug,omitempty"`
	DefaultBranch         string `json:"default_branch,omitempty"`
	LockDir               string `json:"lock_dir,omitempty"`
	MaxLogFiles           *int   `json:"max_log_files,omitempty"`
	PublishTimeoutSeconds *int   `json:"publish_timeout_seconds,omitempty"`
	SourceRepo            string `json:"source_repo,omitempty"`
	TargetRepo            string `json:"target_repo,omitempty"`
	WalkConcurrency       *int   `json:"walk_concurrency,omitempty"`
}

// Engine is the resolved configuration handed to the services
type Engine struct {
	DefaultBranch   string
	LockDir         string
	PublishTimeout  time.Duration
	WalkConcurrency int
}

// DefaultEngine returns the engine configuration used when nothing is set
func DefaultEngine() Engine {
	return Engine{
		DefaultBranch:   DefaultBranch,
		LockDir:         GetLockDir(),
		PublishTimeout:  DefaultPublishTimeoutSeconds * time.Second,
		WalkConcurrency: DefaultWalkConcurrency,
	}
}

// Engine resolves settings over the defaults
func (s *Settings) Engine() Engine {
	e := DefaultEngine()
	if s == nil {
		return e
	}
	if s.DefaultBranch != "" {
		e.DefaultBranch = s.DefaultBranch
	}
	if s.LockDir != "" {
		e.LockDir = s.LockDir
	}
	if s.PublishTimeoutSeconds != nil && *s.PublishTimeoutSeconds > 0 {
		e.PublishTimeout = time.Duration(*s.PublishTimeoutSeconds) * time.Second
	}
	if s.WalkConcurrency != nil && *s.WalkConcurrency > 0 {
		e.WalkConcurrency = *s.WalkConcurrency
	}
	return e
}

// Validate checks for configuration errors
func (s *Settings) Validate() error {
	if s.DefaultBranch != "" && strings.ContainsAny(s.DefaultBranch, " ~^:?*[\\") {
		return fmt.Errorf("default_branch %q is not a valid branch name", s.DefaultBranch)
	}
	if s.PublishTimeoutSeconds != nil && *s.PublishTimeoutSeconds < 0 {
		return fmt.Errorf("publish_timeout_seconds must not be negative")
	}
	if s.WalkConcurrency != nil && *s.WalkConcurrency < 0 {
		return fmt.Errorf("walk_concurrency must not be negative")
	}
	if s.MaxLogFiles != nil && *s.MaxLogFiles < 0 {
		return fmt.Errorf("max_log_files must not be negative")
	}
	return nil
}

// LoadSettings loads settings from $TAXSYNC_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	settings.LockDir = ExpandPath(settings.LockDir)
	settings.SourceRepo = ExpandPath(settings.SourceRepo)
	settings.TargetRepo = ExpandPath(settings.TargetRepo)

	return &settings, nil
}

// SaveSettings saves settings to $TAXSYNC_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
