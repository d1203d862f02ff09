package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
)

// BranchExists implements BranchManager.BranchExists
func (r *GoGitRepository) BranchExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, mapError(fmt.Sprintf("look up branch %s", name), err)
	}
	return true, nil
}

// Checkout implements BranchManager.Checkout.
// Without force, a worktree with unstaged changes refuses to switch.
func (r *GoGitRepository) Checkout(ctx context.Context, name string, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	logging.Logger.Debug("Checking out branch", "location", r.location, "branch", name, "force", force)

	wt, err := r.repo.Worktree()
	if err != nil {
		return mapError("open worktree", err)
	}

	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Force:  force,
	})
	if err != nil {
		return mapError(fmt.Sprintf("check out %s", name), err)
	}
	return nil
}

// CreateBranch implements BranchManager.CreateBranch.
// The new branch points at the current tip of from; it is not checked out.
func (r *GoGitRepository) CreateBranch(ctx context.Context, name, from string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	base, err := r.repo.Reference(plumbing.NewBranchReferenceName(from), true)
	if err != nil {
		return mapError(fmt.Sprintf("resolve base branch %s", from), err)
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), base.Hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return mapError(fmt.Sprintf("create branch %s", name), err)
	}

	logging.Logger.Info("Created branch", "location", r.location, "branch", name, "from", from, "tip", base.Hash().String())
	return nil
}

// CurrentBranch implements BranchManager.CurrentBranch.
// A detached HEAD yields an empty name.
func (r *GoGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.currentBranch()
}

func (r *GoGitRepository) currentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", mapError("read HEAD", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// DeleteBranch implements BranchManager.DeleteBranch.
// The checked-out branch cannot be deleted.
func (r *GoGitRepository) DeleteBranch(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(refName, false); err != nil {
		return mapError(fmt.Sprintf("delete branch %s", name), err)
	}

	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	if current == name {
		return domain.InvalidInputError("delete branch", fmt.Errorf("branch %s is checked out", name))
	}

	if err := r.repo.Storer.RemoveReference(refName); err != nil {
		return mapError(fmt.Sprintf("delete branch %s", name), err)
	}

	// Branches created elsewhere may carry tracking config
	if err := r.repo.DeleteBranch(name); err != nil && !errors.Is(err, gogit.ErrBranchNotFound) {
		logging.Logger.Warn("Failed to remove branch config", "location", r.location, "branch", name, "error", err)
	}

	logging.Logger.Info("Deleted branch", "location", r.location, "branch", name)
	return nil
}
