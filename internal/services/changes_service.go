package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
)

// ChangesService computes what a contribution branch changes relative to the default branch
type ChangesService struct {
	codec         ports.CommitMessageCodec
	defaultBranch string
	opener        ports.RepositoryOpener
	walker        *TreeWalker
}

// NewChangesService creates a new ChangesService
func NewChangesService(
	opener ports.RepositoryOpener,
	codec ports.CommitMessageCodec,
	walker *TreeWalker,
	defaultBranch string,
) *ChangesService {
	return &ChangesService{
		codec:         codec,
		defaultBranch: defaultBranch,
		opener:        opener,
		walker:        walker,
	}
}

// ComputeChangeSet diffs the full trees of the default branch and branch.
// It returns the change-set sorted by path and the tip commit of branch.
func (s *ChangesService) ComputeChangeSet(ctx context.Context, reader ports.ObjectReader, branch string) (domain.ChangeSet, domain.ObjectID, error) {
	ctx, span := tracer.Start(ctx, "ChangesService::ComputeChangeSet", trace.WithAttributes(
		attribute.String("branch", branch),
	))
	defer span.End()

	baseID, err := reader.ResolveRef(ctx, s.defaultBranch)
	if err != nil {
		return nil, "", err
	}
	headID, err := reader.ResolveRef(ctx, branch)
	if err != nil {
		return nil, "", err
	}

	var base, head domain.PathMap
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		base, err = s.walker.Walk(gctx, reader, baseID)
		return err
	})
	g.Go(func() error {
		var err error
		head, err = s.walker.Walk(gctx, reader, headID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	changes := domain.Diff(base, head)
	span.SetAttributes(attribute.Int("changes", len(changes)))
	logging.Logger.Debug("Computed change-set",
		"branch", branch,
		"base", baseID.Short(),
		"head", headID.Short(),
		"added", changes.Count(domain.ChangeAdded),
		"modified", changes.Count(domain.ChangeModified),
		"deleted", changes.Count(domain.ChangeDeleted))
	return changes, headID, nil
}

// ShowChanges builds the review view of branch in the repository at location.
// With withContent, added and modified entries carry their text at the branch tip.
func (s *ChangesService) ShowChanges(ctx context.Context, location, branch string, withContent bool) (*domain.ChangesView, error) {
	const op = "show changes"

	if err := domain.CheckContributionBranch(op, branch, s.defaultBranch); err != nil {
		return nil, err
	}

	repo, err := s.opener.Open(ctx, location)
	if err != nil {
		return nil, domain.WrapError(err, op, location, branch)
	}

	changes, headID, err := s.ComputeChangeSet(ctx, repo, branch)
	if err != nil {
		return nil, domain.WrapError(err, op, location, branch)
	}

	tip, err := repo.ReadCommit(ctx, headID)
	if err != nil {
		return nil, domain.WrapError(err, op, location, branch)
	}
	meta := s.codec.Metadata(tip.Message)

	author := tip.Author.Identity
	if meta.Signoff != nil {
		author = *meta.Signoff
	}

	if withContent {
		for i := range changes {
			if !changes[i].HasContent() {
				continue
			}
			text, err := ReadFileAt(ctx, repo, headID, changes[i].Path)
			if err != nil {
				return nil, domain.WrapError(err, op, location, branch)
			}
			changes[i].Content = &text
		}
	}

	return &domain.ChangesView{
		AuthorEmail:      author.Email,
		AuthorName:       author.Name,
		Branch:           branch,
		ContributionName: meta.ContributionName,
		Entries:          changes,
		SubDirectory:     meta.SubDirectory,
		Summary:          meta.Summary,
	}, nil
}
