package services

import (
	"context"
	"fmt"
	"sort"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
)

// BranchService lists and deletes contribution branches
type BranchService struct {
	codec         ports.CommitMessageCodec
	defaultBranch string
	locker        ports.RepoLocker
	opener        ports.RepositoryOpener
}

// NewBranchService creates a new BranchService
func NewBranchService(
	opener ports.RepositoryOpener,
	codec ports.CommitMessageCodec,
	locker ports.RepoLocker,
	defaultBranch string,
) *BranchService {
	return &BranchService{
		codec:         codec,
		defaultBranch: defaultBranch,
		locker:        locker,
		opener:        opener,
	}
}

// List returns every branch of the repository at location, newest tip first.
// A branch whose tip cannot be read is left out of Branches and reported in
// Skipped; only failing to enumerate branches at all fails the call.
func (s *BranchService) List(ctx context.Context, location string) (*domain.BranchListing, error) {
	const op = "list branches"

	repo, err := s.opener.Open(ctx, location)
	if err != nil {
		return nil, domain.WrapError(err, op, location, "")
	}

	names, err := repo.ListBranches(ctx)
	if err != nil {
		return nil, domain.WrapError(err, op, location, "")
	}

	listing := &domain.BranchListing{Branches: []domain.BranchRecord{}}
	for _, name := range names {
		record, err := s.describe(ctx, repo, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, domain.WrapError(ctx.Err(), op, location, name)
			}
			logging.Logger.Warn("Skipping unreadable branch", "location", location, "branch", name, "error", err)
			listing.Skipped = append(listing.Skipped, domain.SkippedBranch{Name: name, Reason: err.Error()})
			continue
		}
		listing.Branches = append(listing.Branches, *record)
	}

	sort.SliceStable(listing.Branches, func(i, j int) bool {
		a, b := listing.Branches[i], listing.Branches[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Name < b.Name
	})

	logging.Logger.Debug("Listed branches", "location", location, "count", len(listing.Branches), "skipped", len(listing.Skipped))
	return listing, nil
}

func (s *BranchService) describe(ctx context.Context, repo ports.ObjectReader, name string) (*domain.BranchRecord, error) {
	tipID, err := repo.ResolveRef(ctx, name)
	if err != nil {
		return nil, err
	}
	tip, err := repo.ReadCommit(ctx, tipID)
	if err != nil {
		return nil, err
	}

	meta := s.codec.Metadata(tip.Message)
	record := &domain.BranchRecord{
		CreatedAt:       tip.Committer.When,
		CreatedAtMillis: tip.Committer.When.UnixMilli(),
		Name:            name,
		Summary:         meta.Summary,
		TipID:           tipID,
	}
	if meta.SignoffLine != "" {
		author := meta.SignoffLine
		record.AttributedAuthor = &author
	}
	return record, nil
}

// Delete removes a contribution branch. The default branch is refused.
// If the branch is checked out, the default branch is checked out first.
func (s *BranchService) Delete(ctx context.Context, location, branch string) error {
	const op = "delete branch"

	if err := domain.CheckContributionBranch(op, branch, s.defaultBranch); err != nil {
		return err
	}

	release, err := s.locker.Lock(ctx, location)
	if err != nil {
		return domain.WrapError(err, op, location, branch)
	}
	defer release()

	repo, err := s.opener.Open(ctx, location)
	if err != nil {
		return domain.WrapError(err, op, location, branch)
	}

	exists, err := repo.BranchExists(ctx, branch)
	if err != nil {
		return domain.WrapError(err, op, location, branch)
	}
	if !exists {
		return &domain.Error{
			Branch: branch,
			Err:    fmt.Errorf("branch does not exist"),
			Kind:   domain.KindNotFound,
			Op:     op,
			Repo:   location,
		}
	}

	current, err := repo.CurrentBranch(ctx)
	if err != nil {
		return domain.WrapError(err, op, location, branch)
	}
	if current == branch {
		logging.Logger.Info("Switching away from branch before delete", "location", location, "branch", branch, "to", s.defaultBranch)
		if err := repo.Checkout(ctx, s.defaultBranch, false); err != nil {
			return domain.WrapError(err, op, location, branch)
		}
	}

	if err := repo.DeleteBranch(ctx, branch); err != nil {
		return domain.WrapError(err, op, location, branch)
	}

	logging.Logger.Info("Branch deleted", "location", location, "branch", branch)
	return nil
}
