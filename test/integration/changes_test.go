package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsync/test/integration/harness"
)

type changesJSON struct {
	AuthorEmail string `json:"commitAuthorEmail"`
	AuthorName  string `json:"commitAuthorName"`
	Entries     []struct {
		Content *string `json:"content"`
		Path    string  `json:"path"`
		Status  string  `json:"status"`
	} `json:"changeEntries"`
	Summary string `json:"commitSummary"`
}

func TestChanges(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)

	result := harness.RunCommand(t, env, "changes", "--repo", repos.SourcePath, "skill-a", "-o", "json", "--content")

	harness.AssertSuccess(t, result)
	var view changesJSON
	harness.AssertValidJSON(t, result, &view)

	assert.Equal(t, "Jane Doe", view.AuthorName)
	assert.Equal(t, "jane@example.com", view.AuthorEmail)
	assert.NotContains(t, view.Summary, "Signed-off-by")
	require.Len(t, view.Entries, 2)
	assert.Equal(t, "skill/a/attribution.txt", view.Entries[0].Path)
	assert.Equal(t, "modified", view.Entries[0].Status)
	assert.Equal(t, "skill/a/qna.yaml", view.Entries[1].Path)
	assert.Equal(t, "added", view.Entries[1].Status)
	require.NotNil(t, view.Entries[1].Content)
	assert.Contains(t, *view.Entries[1].Content, "seed_examples")

	assert.Equal(t, "main", harness.Head(t, repos.SourcePath), "showing changes never checks anything out")
}

func TestChangesText(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	env.SetEnv("TAXSYNC_SOURCE_REPO", repos.SourcePath)

	result := harness.RunCommand(t, env, "changes", "skill-a")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "skill/a/qna.yaml")
	harness.AssertStdoutContains(t, result, "1 added, 1 modified, 0 deleted")
}

func TestChangesRejectsDefaultBranch(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)

	for _, branch := range []string{"main", "refs/heads/main"} {
		result := harness.RunCommand(t, env, "changes", "--repo", repos.SourcePath, branch)

		harness.AssertFailure(t, result)
		harness.AssertStderrContains(t, result, "protected default branch")
	}
}
