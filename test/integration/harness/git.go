package harness

import (
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"taxsync/internal/testutil"
)

// SignedMessage is a contribution commit message with metadata fields and a sign-off
const SignedMessage = `Skill contribution for a

Contribution-Name:a
Sub-Directory:skill/a

Signed-off-by: Jane Doe <jane@example.com>
`

// BaseFiles is the default branch content of both repositories
var BaseFiles = map[string]string{
	"README.md":               "# taxonomy\n",
	"skill/a/attribution.txt": "original attribution\n",
}

// TestRepos holds an on-disk source repository with contribution branches and
// an independent target repository seeded with the same default branch.
//
// Setup structure:
//
//	tb.TempDir()/
//	├── source/  <- main + skill-a (modifies attribution.txt, adds qna.yaml)
//	└── target/  <- main only
type TestRepos struct {
	Source     *testutil.RepoFixture
	SourcePath string
	Target     *testutil.RepoFixture
	TargetPath string
	tb         testing.TB
}

// NewTestRepos creates the source and target repositories.
// Both are left with main checked out.
func NewTestRepos(tb testing.TB) *TestRepos {
	tb.Helper()

	baseDir := tb.TempDir()
	sourcePath := filepath.Join(baseDir, "source")
	targetPath := filepath.Join(baseDir, "target")

	source := testutil.NewRepoFixtureAt(tb, sourcePath)
	source.Commit("main", "Initial taxonomy", BaseFiles)
	source.Commit("skill-a", SignedMessage, map[string]string{
		"skill/a/attribution.txt": "updated attribution\n",
		"skill/a/qna.yaml":        "seed_examples:\n  - question: why?\n",
	})
	source.Checkout("main")

	target := testutil.NewRepoFixtureAt(tb, targetPath)
	target.Commit("main", "Initial taxonomy", BaseFiles)

	return &TestRepos{
		Source:     source,
		SourcePath: sourcePath,
		Target:     target,
		TargetPath: targetPath,
		tb:         tb,
	}
}

// AddSourceBranch commits files on a new source branch and returns to main.
func (r *TestRepos) AddSourceBranch(name, message string, files map[string]string, removed ...string) {
	r.tb.Helper()
	r.Source.Commit(name, message, files, removed...)
	r.Source.Checkout("main")
}

// Head returns the branch checked out at path, read fresh from disk.
func Head(tb testing.TB, path string) string {
	tb.Helper()

	ref, err := open(tb, path).Head()
	require.NoError(tb, err)
	return ref.Name().Short()
}

// Branches returns every branch name and tip at path, read fresh from disk.
func Branches(tb testing.TB, path string) map[string]string {
	tb.Helper()

	iter, err := open(tb, path).Branches()
	require.NoError(tb, err)

	tips := map[string]string{}
	require.NoError(tb, iter.ForEach(func(ref *plumbing.Reference) error {
		tips[ref.Name().Short()] = ref.Hash().String()
		return nil
	}))
	return tips
}

// TipCommit reads the tip commit of branch at path, fresh from disk.
func TipCommit(tb testing.TB, path, branch string) *object.Commit {
	tb.Helper()

	repo := open(tb, path)
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(tb, err)
	commit, err := repo.CommitObject(ref.Hash())
	require.NoError(tb, err)
	return commit
}

// FilesAt returns the content of every file in the tip of branch at path.
func FilesAt(tb testing.TB, path, branch string) map[string]string {
	tb.Helper()

	files := map[string]string{}
	iter, err := TipCommit(tb, path, branch).Files()
	require.NoError(tb, err)
	require.NoError(tb, iter.ForEach(func(file *object.File) error {
		content, err := file.Contents()
		if err != nil {
			return err
		}
		files[file.Name] = content
		return nil
	}))
	return files
}

func open(tb testing.TB, path string) *gogit.Repository {
	tb.Helper()

	repo, err := gogit.PlainOpen(path)
	require.NoError(tb, err)
	return repo
}
