package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/theme"
)

// ChangesCmd shows the change-set of a contribution branch
type ChangesCmd struct {
	OutputFlag `embed:""`

	Branch  string `arg:"" help:"Contribution branch to inspect"`
	Content bool   `help:"Include the content of added and modified files" short:"c"`
	Repo    string `help:"Repository holding the branch (defaults to source_repo)" env:"TAXSYNC_SOURCE_REPO" type:"path"`
}

// Run executes the changes command
func (c *ChangesCmd) Run(cli *CLI) error {
	repo, err := cli.sourceRepo(c.Repo)
	if err != nil {
		return err
	}

	logging.Logger.Info("Executing changes command", "repo", repo, "branch", c.Branch, "content", c.Content)
	view, err := cli.Container.ChangesService.ShowChanges(context.Background(), repo, c.Branch, c.Content)
	if err != nil {
		return fmt.Errorf("failed to show changes: %w", err)
	}

	if done, err := c.structured(os.Stdout, view); done {
		return err
	}

	c.renderText(view)
	return nil
}

func (c *ChangesCmd) renderText(view *domain.ChangesView) {
	fmt.Println(theme.TitleStyle.Render(firstLine(view.Summary)))
	fmt.Printf("%s %s <%s>\n", theme.LabelStyle.Render("Author:"), view.AuthorName, view.AuthorEmail)
	if view.ContributionName != "" {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Contribution:"), view.ContributionName)
	}
	if view.SubDirectory != "" {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Directory:"), view.SubDirectory)
	}
	fmt.Println()

	if view.Entries.IsEmpty() {
		fmt.Println("No changes relative to the default branch.")
		return
	}

	for _, entry := range view.Entries {
		style := theme.ChangeStyle(entry.Status)
		fmt.Printf("%s %s\n", style.Render(theme.ChangeMarker(entry.Status)), entry.Path)
		if entry.Content != nil {
			for _, line := range strings.Split(strings.TrimRight(*entry.Content, "\n"), "\n") {
				fmt.Println(theme.MutedStyle.Render("    " + line))
			}
		}
	}

	fmt.Printf("\n%d added, %d modified, %d deleted\n",
		view.Entries.Count(domain.ChangeAdded),
		view.Entries.Count(domain.ChangeModified),
		view.Entries.Count(domain.ChangeDeleted))
}

// firstLine returns the first line of a commit message
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
