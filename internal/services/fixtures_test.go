package services

import (
	"context"
	"testing"
	"time"

	"taxsync/internal/adapters/lock"
	"taxsync/internal/commitmsg"
	"taxsync/internal/ports"
	"taxsync/internal/testutil"
)

const (
	sourceLocation = "mem://source"
	targetLocation = "mem://target"
)

const signedMessage = `Skill contribution for a

Contribution-Name:a
Sub-Directory:skill/a

Signed-off-by: Jane Doe <jane@example.com>
`

var baseFiles = map[string]string{
	"README.md":               "# taxonomy\n",
	"skill/a/attribution.txt": "original attribution\n",
}

// newSourceAndTarget returns a source with a "skill-a" branch that modifies
// skill/a/attribution.txt and adds skill/a/qna.yaml, and an independent target
// seeded with the same default branch content
func newSourceAndTarget(t *testing.T) (*testutil.RepoFixture, *testutil.RepoFixture) {
	t.Helper()

	source := testutil.NewRepoFixture(t)
	source.Commit("main", "Initial taxonomy", baseFiles)
	source.Commit("skill-a", signedMessage, map[string]string{
		"skill/a/attribution.txt": "updated attribution\n",
		"skill/a/qna.yaml":        "seed_examples:\n  - question: why?\n",
	})
	source.Checkout("main")

	target := testutil.NewRepoFixture(t)
	target.Commit("main", "Initial taxonomy", baseFiles)

	return source, target
}

func newChangesService(opener ports.RepositoryOpener) *ChangesService {
	return NewChangesService(opener, commitmsg.NewTrailerCodec(), NewTreeWalker(4), "main")
}

func newPublishService(opener ports.RepositoryOpener, locker ports.RepoLocker, history ports.PublishLogWriter) *PublishService {
	if locker == nil {
		locker = lock.NewRepoLocker("")
	}
	svc := NewPublishService(opener, newChangesService(opener), commitmsg.NewTrailerCodec(), locker, history, "main", time.Minute)
	svc.newRunID = func() string { return "run-1" }
	return svc
}

// openerFunc adapts a function to ports.RepositoryOpener
type openerFunc func(ctx context.Context, location string) (ports.Repository, error)

func (f openerFunc) Open(ctx context.Context, location string) (ports.Repository, error) {
	return f(ctx, location)
}
