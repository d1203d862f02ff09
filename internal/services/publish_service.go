package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"taxsync/internal/config"
	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
)

const restoreTimeout = 30 * time.Second

// PublishService replicates a contribution branch from a source repository into
// a freshly created branch of the same name in a target repository
type PublishService struct {
	changes       *ChangesService
	codec         ports.CommitMessageCodec
	defaultBranch string
	history       ports.PublishLogWriter
	locker        ports.RepoLocker
	newRunID      func() string
	now           func() time.Time
	opener        ports.RepositoryOpener
	timeout       time.Duration
}

// NewPublishService creates a new PublishService.
// history may be nil to skip recording runs; a zero timeout disables the deadline.
func NewPublishService(
	opener ports.RepositoryOpener,
	changes *ChangesService,
	codec ports.CommitMessageCodec,
	locker ports.RepoLocker,
	history ports.PublishLogWriter,
	defaultBranch string,
	timeout time.Duration,
) *PublishService {
	return &PublishService{
		changes:       changes,
		codec:         codec,
		defaultBranch: defaultBranch,
		history:       history,
		locker:        locker,
		newRunID:      uuid.NewString,
		now:           time.Now,
		opener:        opener,
		timeout:       timeout,
	}
}

// publishRun carries the mutable state of one Publish call
type publishRun struct {
	changes  domain.ChangeSet
	contents map[string][]byte
	headID   domain.ObjectID
	identity domain.Identity
	message  string
	req      domain.PublishRequest
	result   *domain.PublishResult
	source   ports.Repository
	state    domain.PublishState
	target   ports.Repository
}

// advance moves the run to state. It fails once the deadline has passed so a
// timed out run stops at the next step boundary.
func (r *publishRun) advance(ctx context.Context, state domain.PublishState) error {
	logging.Logger.Info("Publish state transition",
		"run", r.result.RunID,
		"branch", r.req.Branch,
		"from", r.state,
		"to", state)
	r.state = state
	r.result.States = append(r.result.States, state)
	if err := ctx.Err(); err != nil {
		return domain.WrapError(err, "publish", "", r.req.Branch)
	}
	return nil
}

// Publish runs the publish state machine for req.
//
// After input validation the returned result is never nil: on failure it carries
// Status failed next to the error, so callers can still report the run id and any
// restoration failure. "Nothing to publish" is a successful no-changes result.
func (s *PublishService) Publish(ctx context.Context, req domain.PublishRequest) (*domain.PublishResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ctx, span := tracer.Start(ctx, "PublishService::Publish", trace.WithAttributes(
		attribute.String("branch", req.Branch),
		attribute.String("source", req.SourceRepo),
		attribute.String("target", req.TargetRepo),
	))
	defer span.End()

	run := &publishRun{
		req:    req,
		result: &domain.PublishResult{RunID: s.newRunID(), States: []domain.PublishState{domain.StateIdle}},
		state:  domain.StateIdle,
	}
	logging.Logger.Info("Publish started", "run", run.result.RunID, "branch", req.Branch,
		"source", req.SourceRepo, "target", req.TargetRepo)

	startedAt := s.now()
	s.recordStart(ctx, run, startedAt)

	err := s.execute(ctx, run)
	if err != nil {
		run.result.Status = domain.PublishStatusFailed
		span.RecordError(err)
		logging.Logger.Error("Publish failed",
			"run", run.result.RunID,
			"branch", req.Branch,
			"state", run.state,
			"kind", domain.KindOf(err),
			"error", err)
	} else {
		logging.Logger.Info("Publish finished",
			"run", run.result.RunID,
			"branch", req.Branch,
			"status", run.result.Status,
			"commit", run.result.CommitID.Short(),
			"paths", len(run.result.ChangedPaths))
	}

	s.recordFinish(ctx, run, err)
	span.SetAttributes(attribute.String("status", string(run.result.Status)))
	return run.result, err
}

func (s *PublishService) validate(req domain.PublishRequest) error {
	const op = "publish"

	if err := domain.CheckContributionBranch(op, req.Branch, s.defaultBranch); err != nil {
		return err
	}
	if req.SourceRepo == "" || req.TargetRepo == "" {
		return domain.InvalidInputError(op, fmt.Errorf("source and target repositories are required"))
	}
	if config.CanonicalPath(req.SourceRepo) == config.CanonicalPath(req.TargetRepo) {
		return domain.InvalidInputError(op, fmt.Errorf("source and target must be different repositories"))
	}
	return nil
}

// execute takes the repository locks and walks the states in order.
// An empty change-set returns before any checkout. Once the source has been
// touched, restoration runs on every exit path.
func (s *PublishService) execute(ctx context.Context, run *publishRun) error {
	req := run.req

	release, err := s.locker.Lock(ctx, req.SourceRepo, req.TargetRepo)
	if err != nil {
		return domain.WrapError(err, "lock repositories", req.SourceRepo, req.Branch)
	}
	defer release()

	if run.source, err = s.opener.Open(ctx, req.SourceRepo); err != nil {
		return domain.WrapError(err, "open source", req.SourceRepo, req.Branch)
	}
	if run.target, err = s.opener.Open(ctx, req.TargetRepo); err != nil {
		return domain.WrapError(err, "open target", req.TargetRepo, req.Branch)
	}

	if err := s.computeChangeSet(ctx, run); err != nil {
		return err
	}
	if run.changes.IsEmpty() {
		logging.Logger.Info("Nothing to publish", "run", run.result.RunID, "branch", req.Branch)
		run.result.Status = domain.PublishStatusNoChanges
		return run.advance(ctx, domain.StateChangeSetComputed)
	}

	defer func() {
		if restErr := s.restore(ctx, run); restErr != nil {
			run.result.RestorationErr = restErr
		}
	}()

	if err := s.checkoutSource(ctx, run); err != nil {
		return err
	}
	if err := s.readSource(ctx, run); err != nil {
		return err
	}
	if err := s.prepareTarget(ctx, run); err != nil {
		return err
	}
	if err := s.materialize(ctx, run); err != nil {
		return err
	}
	return s.commit(ctx, run)
}

// computeChangeSet diffs the source branch against the source default branch.
// It reads objects only, so no worktree is touched.
func (s *PublishService) computeChangeSet(ctx context.Context, run *publishRun) error {
	repo, branch := run.source, run.req.Branch

	changes, headID, err := s.changes.ComputeChangeSet(ctx, repo, branch)
	if err != nil {
		return domain.WrapError(err, "compute change-set", repo.Location(), branch)
	}
	run.changes, run.headID = changes, headID
	return nil
}

// checkoutSource switches the source worktree to the contribution branch
func (s *PublishService) checkoutSource(ctx context.Context, run *publishRun) error {
	repo, branch := run.source, run.req.Branch

	if err := repo.Checkout(ctx, branch, false); err != nil {
		return domain.WrapError(err, "check out source branch", repo.Location(), branch)
	}
	return run.advance(ctx, domain.StateSourceCheckedOut)
}

// readSource recovers the sign-off identity from the tip message and reads the
// bytes of every non-deleted path from the source worktree.
// Nothing here touches the target, so an unattributable branch fails before any write.
func (s *PublishService) readSource(ctx context.Context, run *publishRun) error {
	repo, branch := run.source, run.req.Branch

	tip, err := repo.ReadCommit(ctx, run.headID)
	if err != nil {
		return domain.WrapError(err, "read source tip", repo.Location(), branch)
	}
	identity, err := s.codec.Identity(tip.Message)
	if err != nil {
		return domain.WrapError(err, "recover sign-off identity", repo.Location(), branch)
	}
	run.identity = identity
	run.message = s.codec.Republish(tip.Message, identity)

	run.contents = make(map[string][]byte, len(run.changes))
	for _, entry := range run.changes {
		if !entry.HasContent() {
			continue
		}
		data, err := repo.ReadFile(ctx, entry.Path)
		if err != nil {
			return domain.WrapError(err, "read source file "+entry.Path, repo.Location(), branch)
		}
		run.contents[entry.Path] = data
	}

	return run.advance(ctx, domain.StateChangeSetComputed)
}

// prepareTarget replaces any existing branch with a fresh one cut from the
// target default branch and checks it out
func (s *PublishService) prepareTarget(ctx context.Context, run *publishRun) error {
	repo, branch := run.target, run.req.Branch
	wrap := func(op string, err error) error {
		return domain.WrapError(err, op, repo.Location(), branch)
	}

	exists, err := repo.BranchExists(ctx, branch)
	if err != nil {
		return wrap("look up target branch", err)
	}
	if exists {
		current, err := repo.CurrentBranch(ctx)
		if err != nil {
			return wrap("read target HEAD", err)
		}
		if current == branch {
			if err := repo.Checkout(ctx, s.defaultBranch, true); err != nil {
				return wrap("check out target default branch", err)
			}
		}
		logging.Logger.Info("Replacing existing target branch", "run", run.result.RunID, "location", repo.Location(), "branch", branch)
		if err := repo.DeleteBranch(ctx, branch); err != nil {
			return wrap("delete target branch", err)
		}
	}

	if err := repo.CreateBranch(ctx, branch, s.defaultBranch); err != nil {
		return wrap("create target branch", err)
	}
	if err := repo.Checkout(ctx, branch, true); err != nil {
		return wrap("check out target branch", err)
	}
	return run.advance(ctx, domain.StateTargetBranchPrepared)
}

// materialize writes added and modified files and removes deleted ones
func (s *PublishService) materialize(ctx context.Context, run *publishRun) error {
	repo, branch := run.target, run.req.Branch

	for _, entry := range run.changes {
		switch entry.Status {
		case domain.ChangeAdded, domain.ChangeModified:
			if err := repo.WriteFile(ctx, entry.Path, run.contents[entry.Path]); err != nil {
				return domain.WrapError(err, "write "+entry.Path, repo.Location(), branch)
			}
		case domain.ChangeDeleted:
			if err := repo.RemoveFile(ctx, entry.Path); err != nil {
				return domain.WrapError(err, "remove "+entry.Path, repo.Location(), branch)
			}
		}
	}
	return run.advance(ctx, domain.StateFilesMaterialized)
}

// commit stages exactly the change-set paths and commits them as the signed-off author
func (s *PublishService) commit(ctx context.Context, run *publishRun) error {
	repo, branch := run.target, run.req.Branch

	paths := run.changes.Paths()
	if err := repo.Stage(ctx, paths); err != nil {
		return domain.WrapError(err, "stage changes", repo.Location(), branch)
	}

	commitID, err := repo.Commit(ctx, run.message, run.identity)
	if err != nil {
		return domain.WrapError(err, "commit", repo.Location(), branch)
	}

	run.result.ChangedPaths = paths
	run.result.CommitID = commitID
	run.result.Status = domain.PublishStatusPublished
	return run.advance(ctx, domain.StateCommitted)
}

// restore checks out the default branch in both repositories.
// It runs detached from ctx cancellation so a timed out run is still cleaned up.
// Failures are logged and returned, never raised over the primary outcome.
func (s *PublishService) restore(ctx context.Context, run *publishRun) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
	defer cancel()

	var errs []error
	// The target worktree belongs to the engine; leftovers of a failed run are discarded
	if err := run.target.Checkout(ctx, s.defaultBranch, true); err != nil {
		errs = append(errs, domain.WrapError(err, "restore target", run.target.Location(), s.defaultBranch))
	}
	if err := run.source.Checkout(ctx, s.defaultBranch, false); err != nil {
		errs = append(errs, domain.WrapError(err, "restore source", run.source.Location(), s.defaultBranch))
	}

	if len(errs) > 0 {
		restErr := &domain.Error{
			Branch: run.req.Branch,
			Err:    errors.Join(errs...),
			Kind:   domain.KindRestorationFailure,
			Op:     "restore default branch",
		}
		logging.Logger.Error("Failed to restore default branch",
			"run", run.result.RunID,
			"branch", run.req.Branch,
			"error", restErr)
		return restErr
	}

	logging.Logger.Info("Publish state transition",
		"run", run.result.RunID,
		"branch", run.req.Branch,
		"from", run.state,
		"to", domain.StateRestoredToMain)
	run.state = domain.StateRestoredToMain
	run.result.States = append(run.result.States, domain.StateRestoredToMain)
	return nil
}

func (s *PublishService) recordStart(ctx context.Context, run *publishRun, startedAt time.Time) {
	if s.history == nil {
		return
	}
	err := s.history.Start(context.WithoutCancel(ctx), domain.PublishRecord{
		Branch:     run.req.Branch,
		ID:         run.result.RunID,
		SourceRepo: run.req.SourceRepo,
		StartedAt:  startedAt,
		TargetRepo: run.req.TargetRepo,
	})
	if err != nil {
		logging.Logger.Warn("Failed to record publish start", "run", run.result.RunID, "error", err)
	}
}

func (s *PublishService) recordFinish(ctx context.Context, run *publishRun, runErr error) {
	if s.history == nil {
		return
	}

	finishedAt := s.now()
	record := domain.PublishRecord{
		Branch:       run.req.Branch,
		ChangedPaths: len(run.result.ChangedPaths),
		CommitID:     run.result.CommitID,
		FinishedAt:   &finishedAt,
		ID:           run.result.RunID,
		Status:       run.result.Status,
	}
	if runErr != nil {
		record.ErrorKind = domain.KindOf(runErr)
		record.ErrorDetail = runErr.Error()
	}
	if run.result.RestorationErr != nil {
		record.RestorationFailure = run.result.RestorationErr.Error()
	}

	if err := s.history.Finish(context.WithoutCancel(ctx), record); err != nil {
		logging.Logger.Warn("Failed to record publish finish", "run", run.result.RunID, "error", err)
	}
}
