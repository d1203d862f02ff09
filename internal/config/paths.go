package config

import (
	"os"
	"path/filepath"
)

// GetHome returns TAXSYNC_HOME or the ~/.taxsync default
func GetHome() string {
	home := os.Getenv("TAXSYNC_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".taxsync"
		}
		return filepath.Join(homeDir, ".taxsync")
	}
	return ExpandPath(home)
}

// GetDBPath returns $TAXSYNC_HOME/history.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "history.db")
}

// GetLockDir returns $TAXSYNC_HOME/locks
func GetLockDir() string {
	return filepath.Join(GetHome(), "locks")
}

// GetSettingsPath returns $TAXSYNC_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

// CanonicalPath expands ~, makes path absolute and resolves symlinks so two
// spellings of one repository compare equal. Parts that cannot be resolved
// (a missing directory, a non-filesystem location) are kept as given.
func CanonicalPath(path string) string {
	path = ExpandPath(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path
}
