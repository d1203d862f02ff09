package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/theme"
)

// BranchesCmd manages contribution branches
type BranchesCmd struct {
	Del  BranchesDelCmd  `cmd:"del" help:"Delete a contribution branch"`
	List BranchesListCmd `cmd:"list" help:"List branches, newest first" default:"1"`
}

// BranchesListCmd lists the branches of a repository
type BranchesListCmd struct {
	OutputFlag `embed:""`

	Repo string `help:"Repository to list (defaults to source_repo)" env:"TAXSYNC_SOURCE_REPO" type:"path"`
}

// Run executes the list command
func (b *BranchesListCmd) Run(cli *CLI) error {
	repo, err := cli.sourceRepo(b.Repo)
	if err != nil {
		return err
	}

	logging.Logger.Info("Executing branches list command", "repo", repo)
	listing, err := cli.Container.BranchService.List(context.Background(), repo)
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	// JSON and YAML keep the wire shape: a bare array of branch records
	if done, err := b.structured(os.Stdout, listing.Branches); done {
		return err
	}

	b.renderText(listing)
	return nil
}

func (b *BranchesListCmd) renderText(listing *domain.BranchListing) {
	if len(listing.Branches) == 0 {
		fmt.Println("No branches found.")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BRANCH\tCREATED\tAUTHOR\tSUMMARY")
		for _, br := range listing.Branches {
			author := theme.MutedStyle.Render("-")
			if br.AttributedAuthor != nil {
				author = *br.AttributedAuthor
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				theme.BranchStyle.Render(br.Name),
				formatTime(br.CreatedAt),
				author,
				firstLine(br.Summary))
		}
		w.Flush()
	}

	for _, skipped := range listing.Skipped {
		fmt.Fprintln(os.Stderr, theme.WarningStyle.Render(
			fmt.Sprintf("Warning: skipped branch '%s': %s", skipped.Name, skipped.Reason)))
	}
}

// BranchesDelCmd deletes a contribution branch
type BranchesDelCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	Name  string `arg:"" help:"Name of the branch to delete"`
	Repo  string `help:"Repository holding the branch (defaults to source_repo)" env:"TAXSYNC_SOURCE_REPO" type:"path"`
}

// Run executes the del command
func (b *BranchesDelCmd) Run(cli *CLI) error {
	repo, err := cli.sourceRepo(b.Repo)
	if err != nil {
		return err
	}

	logging.Logger.Info("Executing branches del command", "repo", repo, "branch", b.Name, "force", b.Force)

	if !b.Force {
		confirmed, err := b.confirmDeletion(repo)
		if err != nil {
			return err
		}
		if !confirmed {
			logging.Logger.Info("User cancelled branch deletion", "branch", b.Name)
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cli.Container.BranchService.Delete(context.Background(), repo, b.Name); err != nil {
		logging.Logger.Error("Failed to delete branch", "branch", b.Name, "error", err)
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	logging.Logger.Info("Branch deleted via CLI", "branch", b.Name)
	fmt.Printf("Branch '%s' deleted\n", b.Name)
	return nil
}

func (b *BranchesDelCmd) confirmDeletion(repo string) (bool, error) {
	logging.Logger.Debug("Prompting user for confirmation", "branch", b.Name)

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete branch %s?", b.Name)).
				Description(fmt.Sprintf("The branch is removed from %s. Its commits stay in the object store.", repo)).
				Value(&confirmed).
				Affirmative("Delete").
				Negative("Keep"),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return confirmed, nil
}
