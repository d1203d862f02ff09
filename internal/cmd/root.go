package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"taxsync/internal/config"
	"taxsync/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"200"`

	DefaultBranch   string `help:"Protected branch contribution branches are cut from" default:"main" env:"TAXSYNC_DEFAULT_BRANCH"`
	PublishTimeout  int    `help:"Seconds a publish run may take before it is aborted (0 = no limit)" default:"120" env:"TAXSYNC_PUBLISH_TIMEOUT"`
	WalkConcurrency int    `help:"Maximum concurrent subtree reads during a tree walk" default:"8" env:"TAXSYNC_WALK_CONCURRENCY"`

	Branches BranchesCmd `cmd:"branches" help:"Manage contribution branches (list, del)"`
	Changes  ChangesCmd  `cmd:"changes" help:"Show what a contribution branch changes relative to the default branch"`
	History  HistoryCmd  `cmd:"history" help:"Show recorded publish runs"`
	Publish  PublishCmd  `cmd:"publish" help:"Replicate a contribution branch into the target repository"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (show)"`
	Info     VersionCmd  `cmd:"" name:"version" help:"Print version information"`

	// Internal fields (not flags)
	Container       *Container                      `kong:"-"`
	settings        *config.Settings                `kong:"-"`
	shutdownTracing func(ctx context.Context) error `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// Engine returns the engine configuration after flags, env and settings were applied
func (c *CLI) Engine() config.Engine {
	engine := c.settings.Engine()
	engine.DefaultBranch = c.DefaultBranch
	engine.WalkConcurrency = c.WalkConcurrency
	engine.PublishTimeout = secondsToDuration(c.PublishTimeout)
	return engine
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings != nil {
		if c.MaxLogFiles == logging.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv("TAXSYNC_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("TAXSYNC_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}

		if c.DefaultBranch == config.DefaultBranch {
			if _, hasEnv := os.LookupEnv("TAXSYNC_DEFAULT_BRANCH"); !hasEnv {
				if c.settings.DefaultBranch != "" {
					c.DefaultBranch = c.settings.DefaultBranch
				}
			}
		}

		if c.PublishTimeout == config.DefaultPublishTimeoutSeconds {
			if _, hasEnv := os.LookupEnv("TAXSYNC_PUBLISH_TIMEOUT"); !hasEnv {
				if c.settings.PublishTimeoutSeconds != nil {
					c.PublishTimeout = *c.settings.PublishTimeoutSeconds
				}
			}
		}

		if c.WalkConcurrency == config.DefaultWalkConcurrency {
			if _, hasEnv := os.LookupEnv("TAXSYNC_WALK_CONCURRENCY"); !hasEnv {
				if c.settings.WalkConcurrency != nil {
					c.WalkConcurrency = *c.settings.WalkConcurrency
				}
			}
		}
	}

	if c.PublishTimeout < 0 {
		return fmt.Errorf("--publish-timeout must not be negative")
	}
	if c.WalkConcurrency < 1 {
		return fmt.Errorf("--walk-concurrency must be at least 1")
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Spans land in the same debug log
	c.shutdownTracing = logging.InitTracing(logFilePath != "")

	// Children (git hooks, editors) append to the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("TAXSYNC_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("TAXSYNC_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv("TAXSYNC_MAX_LOG_FILES", strconv.Itoa(c.MaxLogFiles))
	}

	logging.Logger.Debug("Engine configuration resolved",
		"default_branch", c.DefaultBranch,
		"publish_timeout", c.PublishTimeout,
		"walk_concurrency", c.WalkConcurrency)

	// Create container AFTER logging is initialized so GORM's logger has a target
	container, err := NewContainer(c.Engine())
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.shutdownTracing != nil {
		if err := c.shutdownTracing(context.Background()); err != nil {
			logging.Logger.Warn("Failed to flush spans", "error", err)
		}
	}
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// sourceRepo resolves a repository flag, falling back to settings.json
func (c *CLI) sourceRepo(flag string) (string, error) {
	if flag != "" {
		return config.ExpandPath(flag), nil
	}
	if c.settings != nil && c.settings.SourceRepo != "" {
		return c.settings.SourceRepo, nil
	}
	return "", fmt.Errorf("no source repository: pass --repo, set TAXSYNC_SOURCE_REPO or source_repo in settings.json")
}

// targetRepo resolves the target repository flag, falling back to settings.json
func (c *CLI) targetRepo(flag string) (string, error) {
	if flag != "" {
		return config.ExpandPath(flag), nil
	}
	if c.settings != nil && c.settings.TargetRepo != "" {
		return c.settings.TargetRepo, nil
	}
	return "", fmt.Errorf("no target repository: pass --target, set TAXSYNC_TARGET_REPO or target_repo in settings.json")
}
