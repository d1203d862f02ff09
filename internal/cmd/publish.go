package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/theme"
)

// PublishCmd replicates a contribution branch into the target repository
type PublishCmd struct {
	OutputFlag `embed:""`

	Branch string `arg:"" help:"Contribution branch to publish"`
	Source string `help:"Repository the branch is read from (defaults to source_repo)" env:"TAXSYNC_SOURCE_REPO" type:"path"`
	Target string `help:"Repository the branch is written to (defaults to target_repo)" env:"TAXSYNC_TARGET_REPO" type:"path"`
}

// publishOutput is the wire shape of a publish outcome
type publishOutput struct {
	domain.PublishResult `yaml:",inline"`

	Error              *publishError `json:"error,omitempty" yaml:"error,omitempty"`
	RestorationFailure string        `json:"restorationFailure,omitempty" yaml:"restorationFailure,omitempty"`
}

type publishError struct {
	Detail string           `json:"detail" yaml:"detail"`
	Kind   domain.ErrorKind `json:"kind" yaml:"kind"`
}

// Run executes the publish command
func (p *PublishCmd) Run(cli *CLI) error {
	source, err := cli.sourceRepo(p.Source)
	if err != nil {
		return err
	}
	target, err := cli.targetRepo(p.Target)
	if err != nil {
		return err
	}

	// Ctrl-C cancels the run; the default branch is still restored in both repositories
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logging.Logger.Info("Executing publish command", "branch", p.Branch, "source", source, "target", target)
	result, runErr := cli.Container.PublishService.Publish(ctx, domain.PublishRequest{
		Branch:     p.Branch,
		SourceRepo: source,
		TargetRepo: target,
	})
	if result == nil {
		return fmt.Errorf("failed to publish: %w", runErr)
	}

	out := publishOutput{PublishResult: *result}
	if runErr != nil {
		out.Error = &publishError{Detail: errorDetail(runErr), Kind: domain.KindOf(runErr)}
	}
	if result.RestorationErr != nil {
		out.RestorationFailure = result.RestorationErr.Error()
	}

	if done, err := p.structured(os.Stdout, out); done {
		if err != nil {
			return err
		}
	} else {
		p.renderText(out)
	}

	if result.RestorationErr != nil {
		fmt.Fprintln(os.Stderr, theme.WarningStyle.Render(
			"Warning: failed to restore the default branch: "+result.RestorationErr.Error()))
	}
	if runErr != nil {
		return fmt.Errorf("failed to publish: %w", runErr)
	}
	return nil
}

func (p *PublishCmd) renderText(out publishOutput) {
	status := theme.StatusStyle(out.Status).Render(string(out.Status))
	fmt.Printf("%s %s (%s)\n", theme.BranchStyle.Render(p.Branch), status, theme.MutedStyle.Render("run "+out.RunID))

	switch out.Status {
	case domain.PublishStatusPublished:
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Commit:"), out.CommitID.Short())
		for _, path := range out.ChangedPaths {
			fmt.Printf("  %s\n", path)
		}
	case domain.PublishStatusNoChanges:
		fmt.Println("Nothing to publish: the branch does not differ from the default branch.")
	}
}

// errorDetail returns the cause of err without its operation prefix
func errorDetail(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Detail()
	}
	return err.Error()
}
