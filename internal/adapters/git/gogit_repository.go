package git

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"

	"taxsync/internal/config"
	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
)

// GoGitRepository implements ports.Repository on top of go-git.
// Reads go straight to the object database; writes go through the worktree.
// go-git is not safe for concurrent use, so every call holds mu.
type GoGitRepository struct {
	location string
	mu       sync.Mutex
	now      func() time.Time
	repo     *gogit.Repository
}

// Verify interface compliance at compile time
var _ ports.Repository = (*GoGitRepository)(nil)

// NewGoGitRepository wraps an already opened go-git repository
func NewGoGitRepository(repo *gogit.Repository, location string) *GoGitRepository {
	return &GoGitRepository{
		location: location,
		now:      time.Now,
		repo:     repo,
	}
}

// Location returns the location the repository was opened from
func (r *GoGitRepository) Location() string {
	return r.location
}

// Opener implements ports.RepositoryOpener for repositories on local disk
type Opener struct{}

// Verify interface compliance at compile time
var _ ports.RepositoryOpener = (*Opener)(nil)

// NewOpener creates a new Opener
func NewOpener() *Opener {
	return &Opener{}
}

// Open implements RepositoryOpener.Open
func (o *Opener) Open(ctx context.Context, location string) (ports.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if location == "" {
		return nil, domain.InvalidInputError("open repository", fmt.Errorf("repository location is required"))
	}

	path := config.ExpandPath(location)
	logging.Logger.Debug("Opening repository", "location", location, "path", path)

	repo, err := gogit.PlainOpen(path)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, domain.NotFoundError("open repository", fmt.Errorf("no repository at %s: %w", path, err))
		}
		return nil, fmt.Errorf("failed to open repository %s: %w", path, err)
	}

	return NewGoGitRepository(repo, location), nil
}
