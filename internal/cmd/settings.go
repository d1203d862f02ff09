package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"taxsync/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"show" help:"Show settings file location, effective configuration and available options" default:"1"`
}

// SettingsShowCmd displays settings metadata
type SettingsShowCmd struct {
	OutputFlag `embed:""`
}

// settingsView is the wire shape of the settings command
type settingsView struct {
	Effective    effectiveSettings `json:"effective" yaml:"effective"`
	Example      map[string]any    `json:"format" yaml:"format"`
	SettingsFile string            `json:"settings_file" yaml:"settings_file"`
}

type effectiveSettings struct {
	DefaultBranch         string `json:"default_branch" yaml:"default_branch"`
	HistoryDB             string `json:"history_db" yaml:"history_db"`
	LockDir               string `json:"lock_dir" yaml:"lock_dir"`
	PublishTimeoutSeconds int    `json:"publish_timeout_seconds" yaml:"publish_timeout_seconds"`
	SourceRepo            string `json:"source_repo,omitempty" yaml:"source_repo,omitempty"`
	TargetRepo            string `json:"target_repo,omitempty" yaml:"target_repo,omitempty"`
	WalkConcurrency       int    `json:"walk_concurrency" yaml:"walk_concurrency"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	engine := cli.Engine()
	view := settingsView{
		Effective: effectiveSettings{
			DefaultBranch:         engine.DefaultBranch,
			HistoryDB:             config.GetDBPath(),
			LockDir:               engine.LockDir,
			PublishTimeoutSeconds: int(engine.PublishTimeout.Seconds()),
			WalkConcurrency:       engine.WalkConcurrency,
		},
		Example:      config.GetSettingsExample(),
		SettingsFile: config.GetSettingsPath(),
	}
	if source, err := cli.sourceRepo(""); err == nil {
		view.Effective.SourceRepo = source
	}
	if target, err := cli.targetRepo(""); err == nil {
		view.Effective.TargetRepo = target
	}

	if done, err := s.structured(os.Stdout, view); done {
		return err
	}

	fmt.Printf("Settings file: %s\n\n", view.SettingsFile)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Effective configuration:")
	fmt.Fprintf(w, "  default_branch\t%s\n", view.Effective.DefaultBranch)
	fmt.Fprintf(w, "  publish_timeout_seconds\t%d\n", view.Effective.PublishTimeoutSeconds)
	fmt.Fprintf(w, "  walk_concurrency\t%d\n", view.Effective.WalkConcurrency)
	fmt.Fprintf(w, "  lock_dir\t%s\n", view.Effective.LockDir)
	fmt.Fprintf(w, "  history_db\t%s\n", view.Effective.HistoryDB)
	fmt.Fprintf(w, "  source_repo\t%s\n", orDash(view.Effective.SourceRepo))
	fmt.Fprintf(w, "  target_repo\t%s\n", orDash(view.Effective.TargetRepo))
	w.Flush()

	fmt.Println()
	fmt.Println("Example settings.json:")
	fmt.Println()

	keys := make([]string, 0, len(view.Example))
	for key := range view.Example {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s\t%v\n", key, view.Example[key])
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Create or edit this file to configure taxsync.")
	fmt.Println("All settings are optional and have sensible defaults.")

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
