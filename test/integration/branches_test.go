package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsync/test/integration/harness"
)

type branchJSON struct {
	AttributedAuthor *string `json:"attributedAuthor"`
	CreatedAtMillis  int64   `json:"creationTimestampMillis"`
	Name             string  `json:"name"`
	Summary          string  `json:"messageSummary"`
}

func TestBranchesList(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	repos.AddSourceBranch("unsigned", "Draft without sign-off", map[string]string{"x.md": "x"})

	result := harness.RunCommand(t, env, "branches", "list", "--repo", repos.SourcePath, "-o", "json")

	harness.AssertSuccess(t, result)
	var branches []branchJSON
	harness.AssertValidJSON(t, result, &branches)
	require.Len(t, branches, 3)

	assert.Equal(t, "unsigned", branches[0].Name)
	assert.Nil(t, branches[0].AttributedAuthor)
	assert.Equal(t, "skill-a", branches[1].Name)
	require.NotNil(t, branches[1].AttributedAuthor)
	assert.Equal(t, "Jane Doe <jane@example.com>", *branches[1].AttributedAuthor)
	assert.NotContains(t, branches[1].Summary, "Signed-off-by")
	assert.Contains(t, branches[1].Summary, "Contribution-Name:a")
	assert.Equal(t, "main", branches[2].Name)
	assert.Greater(t, branches[0].CreatedAtMillis, branches[1].CreatedAtMillis)
}

func TestBranchesListFromSettings(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	env.WriteSettings(`{"source_repo": "` + repos.SourcePath + `"}`)

	result := harness.RunCommand(t, env, "branches", "list")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "skill-a")
	harness.AssertStdoutContains(t, result, "Jane Doe <jane@example.com>")
}

func TestBranchesListYAML(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)

	result := harness.RunCommand(t, env, "branches", "list", "--repo", repos.SourcePath, "-o", "yaml")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "name: skill-a")
	harness.AssertStdoutContains(t, result, "creationTimestampMillis:")
}

func TestBranchesListMissingRepository(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "branches", "list", "--repo", t.TempDir()+"/nope")

	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "no repository at")
}

func TestBranchesDel(t *testing.T) {
	tests := []struct {
		name         string
		args         func(repos *harness.TestRepos) []string
		wantExitCode int
		validate     func(t *testing.T, repos *harness.TestRepos, result harness.CommandResult)
	}{
		{
			name: "delete contribution branch with force",
			args: func(repos *harness.TestRepos) []string {
				return []string{"branches", "del", "-f", "--repo", repos.SourcePath, "skill-a"}
			},
			wantExitCode: 0,
			validate: func(t *testing.T, repos *harness.TestRepos, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Branch 'skill-a' deleted")
				assert.NotContains(t, harness.Branches(t, repos.SourcePath), "skill-a")
			},
		},
		{
			name: "default branch is protected",
			args: func(repos *harness.TestRepos) []string {
				return []string{"branches", "del", "-f", "--repo", repos.SourcePath, "main"}
			},
			wantExitCode: 1,
			validate: func(t *testing.T, repos *harness.TestRepos, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "protected default branch")
				assert.Contains(t, harness.Branches(t, repos.SourcePath), "main")
			},
		},
		{
			name: "non-existent branch fails",
			args: func(repos *harness.TestRepos) []string {
				return []string{"branches", "del", "-f", "--repo", repos.SourcePath, "ghost"}
			},
			wantExitCode: 1,
			validate: func(t *testing.T, repos *harness.TestRepos, result harness.CommandResult) {
				harness.AssertStderrContains(t, result, "branch does not exist")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)
			repos := harness.NewTestRepos(t)

			result := harness.RunCommand(t, env, tt.args(repos)...)

			harness.AssertExitCode(t, result, tt.wantExitCode)
			if tt.validate != nil {
				tt.validate(t, repos, result)
			}
		})
	}
}
