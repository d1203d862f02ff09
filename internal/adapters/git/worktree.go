package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
)

// ReadFile implements WorktreeWriter.ReadFile
func (r *GoGitRepository) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clean, err := cleanPath(name)
	if err != nil {
		return nil, err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, mapError("open worktree", err)
	}

	f, err := wt.Filesystem.Open(clean)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NotFoundError("read file", fmt.Errorf("%s does not exist in the worktree: %w", clean, err))
		}
		return nil, fmt.Errorf("failed to open %s: %w", clean, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", clean, err)
	}
	return data, nil
}

// WriteFile implements WorktreeWriter.WriteFile.
// Missing parent directories are created.
func (r *GoGitRepository) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clean, err := cleanPath(name)
	if err != nil {
		return err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return mapError("open worktree", err)
	}

	if dir := path.Dir(clean); dir != "." {
		if err := wt.Filesystem.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(wt.Filesystem, clean, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", clean, err)
	}
	return nil
}

// RemoveFile implements WorktreeWriter.RemoveFile.
// Removing a path that does not exist is not an error.
func (r *GoGitRepository) RemoveFile(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clean, err := cleanPath(name)
	if err != nil {
		return err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return mapError("open worktree", err)
	}

	if err := wt.Filesystem.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", clean, err)
	}
	return nil
}

// Stage implements WorktreeWriter.Stage.
// Paths present in the worktree are added; paths gone from it are removed from the index.
func (r *GoGitRepository) Stage(ctx context.Context, paths []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	wt, err := r.repo.Worktree()
	if err != nil {
		return mapError("open worktree", err)
	}

	for _, p := range paths {
		clean, err := cleanPath(p)
		if err != nil {
			return err
		}

		if _, statErr := wt.Filesystem.Lstat(clean); statErr == nil {
			if _, err := wt.Add(clean); err != nil {
				return fmt.Errorf("failed to stage %s: %w", clean, err)
			}
			continue
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return fmt.Errorf("failed to stat %s: %w", clean, statErr)
		}

		if _, err := wt.Remove(clean); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
			return fmt.Errorf("failed to stage removal of %s: %w", clean, err)
		}
	}

	logging.Logger.Debug("Staged paths", "location", r.location, "count", len(paths))
	return nil
}

// Commit implements WorktreeWriter.Commit.
// The author is also recorded as committer. Empty commits are allowed so that
// republishing unchanged content still produces a fresh branch tip.
func (r *GoGitRepository) Commit(ctx context.Context, message string, author domain.Identity) (domain.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	wt, err := r.repo.Worktree()
	if err != nil {
		return "", mapError("open worktree", err)
	}

	sig := &object.Signature{
		Email: author.Email,
		Name:  author.Name,
		When:  r.now(),
	}
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		AllowEmptyCommits: true,
		Author:            sig,
		Committer:         sig,
	})
	if err != nil {
		return "", mapError("commit", err)
	}

	logging.Logger.Info("Created commit", "location", r.location, "commit", hash.String(), "author", author.String())
	return domain.ObjectID(hash.String()), nil
}

// cleanPath normalizes a repository-relative path and refuses anything that
// would escape the worktree or touch the git directory
func cleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", domain.InvalidInputError("clean path", fmt.Errorf("%q is not a relative path", p))
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", domain.InvalidInputError("clean path", fmt.Errorf("%q escapes the worktree", p))
	}
	if clean == ".git" || strings.HasPrefix(clean, ".git/") {
		return "", domain.InvalidInputError("clean path", fmt.Errorf("%q is inside the git directory", p))
	}
	return clean, nil
}
