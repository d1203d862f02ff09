// Package testutil builds git repositories for tests, in memory or on disk
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	gitadapter "taxsync/internal/adapters/git"
	"taxsync/internal/domain"
	"taxsync/internal/ports"
)

// FixtureAuthor is the author of every commit made by RepoFixture
var FixtureAuthor = domain.Identity{Email: "fixture@example.com", Name: "Fixture"}

// RepoFixture is a test repository whose HEAD starts on an unborn "main"
type RepoFixture struct {
	Repo *gogit.Repository

	clock time.Time
	t     testing.TB
}

// NewRepoFixture initializes an empty in-memory repository
func NewRepoFixture(t testing.TB) *RepoFixture {
	t.Helper()

	repo, err := gogit.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("main"))
	require.NoError(t, repo.Storer.SetReference(head))

	return newFixture(t, repo)
}

// NewRepoFixtureAt initializes an empty repository with a worktree at dir on disk
func NewRepoFixtureAt(t testing.TB, dir string) *RepoFixture {
	t.Helper()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("main"))
	require.NoError(t, repo.Storer.SetReference(head))

	return newFixture(t, repo)
}

func newFixture(t testing.TB, repo *gogit.Repository) *RepoFixture {
	return &RepoFixture{
		Repo:  repo,
		clock: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		t:     t,
	}
}

// Commit writes files and removes paths on branch, then commits.
// The branch is created from HEAD when missing and stays checked out afterwards.
// Every commit is one minute newer than the previous one.
func (f *RepoFixture) Commit(branch, message string, files map[string]string, removed ...string) domain.ObjectID {
	f.t.Helper()

	wt, err := f.Repo.Worktree()
	require.NoError(f.t, err)

	f.switchTo(wt, branch)

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		require.NoError(f.t, util.WriteFile(wt.Filesystem, p, []byte(files[p]), 0644))
		_, err := wt.Add(p)
		require.NoError(f.t, err)
	}
	for _, p := range removed {
		_, err := wt.Remove(p)
		require.NoError(f.t, err)
	}

	f.clock = f.clock.Add(time.Minute)
	sig := &object.Signature{Email: FixtureAuthor.Email, Name: FixtureAuthor.Name, When: f.clock}
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		AllowEmptyCommits: true,
		Author:            sig,
		Committer:         sig,
	})
	require.NoError(f.t, err)

	return domain.ObjectID(hash.String())
}

// Checkout switches the worktree to an existing branch
func (f *RepoFixture) Checkout(branch string) {
	f.t.Helper()

	wt, err := f.Repo.Worktree()
	require.NoError(f.t, err)
	require.NoError(f.t, wt.Checkout(&gogit.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branch)}))
}

// Head returns the checked-out branch name
func (f *RepoFixture) Head() string {
	f.t.Helper()

	ref, err := f.Repo.Head()
	require.NoError(f.t, err)
	return ref.Name().Short()
}

// Branches returns every branch name and its tip
func (f *RepoFixture) Branches() map[string]string {
	f.t.Helper()

	iter, err := f.Repo.Branches()
	require.NoError(f.t, err)

	tips := map[string]string{}
	require.NoError(f.t, iter.ForEach(func(ref *plumbing.Reference) error {
		tips[ref.Name().Short()] = ref.Hash().String()
		return nil
	}))
	return tips
}

// FilesAt returns the content of every file in the tip of branch
func (f *RepoFixture) FilesAt(branch string) map[string]string {
	f.t.Helper()

	ref, err := f.Repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(f.t, err)
	commit, err := f.Repo.CommitObject(ref.Hash())
	require.NoError(f.t, err)

	files := map[string]string{}
	iter, err := commit.Files()
	require.NoError(f.t, err)
	require.NoError(f.t, iter.ForEach(func(file *object.File) error {
		content, err := file.Contents()
		if err != nil {
			return err
		}
		files[file.Name] = content
		return nil
	}))
	return files
}

// TipCommit reads the tip commit of branch
func (f *RepoFixture) TipCommit(branch string) *object.Commit {
	f.t.Helper()

	ref, err := f.Repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(f.t, err)
	commit, err := f.Repo.CommitObject(ref.Hash())
	require.NoError(f.t, err)
	return commit
}

// Adapter wraps the fixture in the production repository adapter
func (f *RepoFixture) Adapter(location string) *gitadapter.GoGitRepository {
	return gitadapter.NewGoGitRepository(f.Repo, location)
}

func (f *RepoFixture) switchTo(wt *gogit.Worktree, branch string) {
	head, err := f.Repo.Storer.Reference(plumbing.HEAD)
	require.NoError(f.t, err)

	name := plumbing.NewBranchReferenceName(branch)
	if head.Target() == name {
		return
	}

	_, err = f.Repo.Reference(name, false)
	require.NoError(f.t, wt.Checkout(&gogit.CheckoutOptions{
		Branch: name,
		Create: err != nil,
	}))
}

// MemoryOpener implements ports.RepositoryOpener over registered fixtures
type MemoryOpener struct {
	mu    sync.Mutex
	repos map[string]ports.Repository
}

// Verify interface compliance at compile time
var _ ports.RepositoryOpener = (*MemoryOpener)(nil)

// NewMemoryOpener creates an opener serving the given fixtures by location
func NewMemoryOpener(fixtures map[string]*RepoFixture) *MemoryOpener {
	o := &MemoryOpener{repos: map[string]ports.Repository{}}
	for location, f := range fixtures {
		o.repos[location] = f.Adapter(location)
	}
	return o
}

// Open implements RepositoryOpener.Open
func (o *MemoryOpener) Open(ctx context.Context, location string) (ports.Repository, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	repo, ok := o.repos[location]
	if !ok {
		return nil, domain.NotFoundError("open repository", fmt.Errorf("no repository at %s", location))
	}
	return repo, nil
}
