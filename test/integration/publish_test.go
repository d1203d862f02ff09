package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsync/test/integration/harness"
)

type publishJSON struct {
	ChangedPaths []string `json:"changedPaths"`
	CommitID     string   `json:"commitId"`
	Error        *struct {
		Detail string `json:"detail"`
		Kind   string `json:"kind"`
	} `json:"error"`
	RunID  string `json:"runId"`
	Status string `json:"status"`
}

func publishArgs(repos *harness.TestRepos, branch string) []string {
	return []string{"publish", "--source", repos.SourcePath, "--target", repos.TargetPath, "-o", "json", branch}
}

func TestPublish(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	targetMain := harness.Branches(t, repos.TargetPath)["main"]

	result := harness.RunCommand(t, env, publishArgs(repos, "skill-a")...)

	harness.AssertSuccess(t, result)
	var out publishJSON
	harness.AssertValidJSON(t, result, &out)
	assert.Equal(t, "published", out.Status)
	assert.Equal(t, []string{"skill/a/attribution.txt", "skill/a/qna.yaml"}, out.ChangedPaths)
	assert.NotEmpty(t, out.RunID)
	assert.Nil(t, out.Error)

	assert.Equal(t, map[string]string{
		"README.md":               "# taxonomy\n",
		"skill/a/attribution.txt": "updated attribution\n",
		"skill/a/qna.yaml":        "seed_examples:\n  - question: why?\n",
	}, harness.FilesAt(t, repos.TargetPath, "skill-a"))

	tip := harness.TipCommit(t, repos.TargetPath, "skill-a")
	assert.Equal(t, out.CommitID, tip.Hash.String())
	assert.Equal(t, "Jane Doe", tip.Author.Name)
	assert.Equal(t, harness.SignedMessage, tip.Message)
	require.Len(t, tip.ParentHashes, 1)
	assert.Equal(t, targetMain, tip.ParentHashes[0].String())

	assert.Equal(t, "main", harness.Head(t, repos.SourcePath))
	assert.Equal(t, "main", harness.Head(t, repos.TargetPath))
	assert.Equal(t, targetMain, harness.Branches(t, repos.TargetPath)["main"])
}

func TestPublishTwiceReplacesBranch(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)

	harness.AssertSuccess(t, harness.RunCommand(t, env, publishArgs(repos, "skill-a")...))
	first := harness.FilesAt(t, repos.TargetPath, "skill-a")

	result := harness.RunCommand(t, env, publishArgs(repos, "skill-a")...)

	harness.AssertSuccess(t, result)
	harness.AssertJSONContains(t, result, "status", "published")
	assert.Equal(t, first, harness.FilesAt(t, repos.TargetPath, "skill-a"))
	tip := harness.TipCommit(t, repos.TargetPath, "skill-a")
	require.Len(t, tip.ParentHashes, 1)
	assert.Equal(t, harness.Branches(t, repos.TargetPath)["main"], tip.ParentHashes[0].String())
}

func TestPublishNothingToPublish(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	repos.AddSourceBranch("noop", harness.SignedMessage, nil)
	before := harness.Branches(t, repos.TargetPath)

	result := harness.RunCommand(t, env, publishArgs(repos, "noop")...)

	harness.AssertSuccess(t, result)
	harness.AssertJSONContains(t, result, "status", "no-changes")
	assert.Equal(t, before, harness.Branches(t, repos.TargetPath))
}

func TestPublishMissingSignoff(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	repos.AddSourceBranch("unsigned", "Draft without sign-off", map[string]string{"skill/b/qna.yaml": "x"})
	before := harness.Branches(t, repos.TargetPath)

	result := harness.RunCommand(t, env, publishArgs(repos, "unsigned")...)

	harness.AssertExitCode(t, result, 1)
	harness.AssertJSONContains(t, result, "status", "failed")
	harness.AssertErrorKind(t, result, "unparsable_authorship")
	assert.Equal(t, before, harness.Branches(t, repos.TargetPath))
	assert.Equal(t, "main", harness.Head(t, repos.SourcePath))
}

func TestPublishProtectedBranch(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	before := harness.Branches(t, repos.TargetPath)

	result := harness.RunCommand(t, env, publishArgs(repos, "main")...)

	harness.AssertExitCode(t, result, 1)
	harness.AssertStdoutEmpty(t, result)
	harness.AssertStderrContains(t, result, "protected default branch")
	assert.Equal(t, before, harness.Branches(t, repos.TargetPath))
}

func TestPublishRejectsFullRefOfDefaultBranch(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	before := harness.Branches(t, repos.TargetPath)

	result := harness.RunCommand(t, env, publishArgs(repos, "refs/heads/main")...)

	harness.AssertExitCode(t, result, 1)
	harness.AssertStdoutEmpty(t, result)
	harness.AssertStderrContains(t, result, "protected default branch")
	assert.Equal(t, before, harness.Branches(t, repos.TargetPath))
	assert.Equal(t, "main", harness.Head(t, repos.TargetPath))
}

func TestPublishDebugLogRecordsSpans(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	logFile := filepath.Join(env.Home, "debug.log")

	result := harness.RunCommand(t, env, append([]string{"--debug-file", logFile}, publishArgs(repos, "skill-a")...)...)

	harness.AssertSuccess(t, result)
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Span finished: PublishService::Publish")
	assert.Contains(t, string(data), "Span finished: TreeWalker::Walk")
}

func TestPublishTextOutput(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	repos := harness.NewTestRepos(t)
	env.SetEnv("TAXSYNC_SOURCE_REPO", repos.SourcePath)
	env.SetEnv("TAXSYNC_TARGET_REPO", repos.TargetPath)

	result := harness.RunCommand(t, env, "publish", "skill-a")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "published")
	harness.AssertStdoutContains(t, result, "skill/a/qna.yaml")
}
