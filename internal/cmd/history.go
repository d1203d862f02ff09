package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/theme"
)

// HistoryCmd lists recorded publish runs, or shows one run
type HistoryCmd struct {
	OutputFlag `embed:""`

	Branch string `help:"Only show runs of this branch" short:"b"`
	ID     string `arg:"" optional:"" help:"Run id to show in detail"`
	Limit  int    `help:"Maximum number of runs to list" default:"20" short:"n"`
}

// historyEntry is the wire shape of one recorded run
type historyEntry struct {
	Branch             string               `json:"branch" yaml:"branch"`
	ChangedPaths       int                  `json:"changedPaths" yaml:"changedPaths"`
	CommitID           domain.ObjectID      `json:"commitId,omitempty" yaml:"commitId,omitempty"`
	DurationMillis     int64                `json:"durationMillis,omitempty" yaml:"durationMillis,omitempty"`
	ErrorDetail        string               `json:"errorDetail,omitempty" yaml:"errorDetail,omitempty"`
	ErrorKind          domain.ErrorKind     `json:"errorKind,omitempty" yaml:"errorKind,omitempty"`
	FinishedAt         *time.Time           `json:"finishedAt,omitempty" yaml:"finishedAt,omitempty"`
	ID                 string               `json:"id" yaml:"id"`
	RestorationFailure string               `json:"restorationFailure,omitempty" yaml:"restorationFailure,omitempty"`
	SourceRepo         string               `json:"sourceRepo" yaml:"sourceRepo"`
	StartedAt          time.Time            `json:"startedAt" yaml:"startedAt"`
	Status             domain.PublishStatus `json:"status" yaml:"status"`
	TargetRepo         string               `json:"targetRepo" yaml:"targetRepo"`
}

func newHistoryEntry(r domain.PublishRecord) historyEntry {
	status := r.Status
	if !r.IsFinished() {
		status = "running"
	}
	return historyEntry{
		Branch:             r.Branch,
		ChangedPaths:       r.ChangedPaths,
		CommitID:           r.CommitID,
		DurationMillis:     r.Duration().Milliseconds(),
		ErrorDetail:        r.ErrorDetail,
		ErrorKind:          r.ErrorKind,
		FinishedAt:         r.FinishedAt,
		ID:                 r.ID,
		RestorationFailure: r.RestorationFailure,
		SourceRepo:         r.SourceRepo,
		StartedAt:          r.StartedAt,
		Status:             status,
		TargetRepo:         r.TargetRepo,
	}
}

// Run executes the history command
func (h *HistoryCmd) Run(cli *CLI) error {
	ctx := context.Background()

	if h.ID != "" {
		logging.Logger.Info("Executing history command", "id", h.ID)
		record, err := cli.Container.HistoryService.Get(ctx, h.ID)
		if err != nil {
			return fmt.Errorf("failed to get publish run: %w", err)
		}
		entry := newHistoryEntry(*record)
		if done, err := h.structured(os.Stdout, entry); done {
			return err
		}
		h.renderDetail(entry)
		return nil
	}

	logging.Logger.Info("Executing history command", "branch", h.Branch, "limit", h.Limit)
	records, err := cli.Container.HistoryService.List(ctx, h.Branch, h.Limit)
	if err != nil {
		return err
	}

	entries := make([]historyEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, newHistoryEntry(r))
	}
	if done, err := h.structured(os.Stdout, entries); done {
		return err
	}
	h.renderTable(entries)
	return nil
}

func (h *HistoryCmd) renderTable(entries []historyEntry) {
	if len(entries) == 0 {
		fmt.Println("No publish runs recorded.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tBRANCH\tSTATUS\tPATHS\tCOMMIT\tRUN")
	for _, e := range entries {
		commit := e.CommitID.Short()
		if commit == "" {
			commit = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			formatTime(e.StartedAt),
			e.Branch,
			theme.StatusStyle(e.Status).Render(string(e.Status)),
			e.ChangedPaths,
			commit,
			theme.MutedStyle.Render(e.ID))
	}
	w.Flush()
}

func (h *HistoryCmd) renderDetail(e historyEntry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Run:\t%s\n", e.ID)
	fmt.Fprintf(w, "Branch:\t%s\n", e.Branch)
	fmt.Fprintf(w, "Status:\t%s\n", theme.StatusStyle(e.Status).Render(string(e.Status)))
	fmt.Fprintf(w, "Source:\t%s\n", e.SourceRepo)
	fmt.Fprintf(w, "Target:\t%s\n", e.TargetRepo)
	fmt.Fprintf(w, "Started:\t%s\n", formatTime(e.StartedAt))
	if e.FinishedAt != nil {
		fmt.Fprintf(w, "Finished:\t%s (%s)\n", formatTime(*e.FinishedAt), time.Duration(e.DurationMillis)*time.Millisecond)
	}
	if !e.CommitID.IsZero() {
		fmt.Fprintf(w, "Commit:\t%s\n", e.CommitID)
	}
	fmt.Fprintf(w, "Changed paths:\t%d\n", e.ChangedPaths)
	if e.ErrorKind != "" {
		fmt.Fprintf(w, "Error:\t%s: %s\n", e.ErrorKind, e.ErrorDetail)
	}
	if e.RestorationFailure != "" {
		fmt.Fprintf(w, "Restoration:\t%s\n", e.RestorationFailure)
	}
	w.Flush()
}
