package domain

import "time"

// PublishStatus is the successful outcome of a publish run
type PublishStatus string

const (
	PublishStatusFailed    PublishStatus = "failed"
	PublishStatusNoChanges PublishStatus = "no-changes"
	PublishStatusPublished PublishStatus = "published"
)

// PublishState is a step of the publish state machine.
// Runs move strictly forward through the states in declaration order;
// RestoredToMain is reached on every path once the source has been checked out.
type PublishState string

const (
	StateIdle                 PublishState = "idle"
	StateSourceCheckedOut     PublishState = "source-checked-out"
	StateChangeSetComputed    PublishState = "change-set-computed"
	StateTargetBranchPrepared PublishState = "target-branch-prepared"
	StateFilesMaterialized    PublishState = "files-materialized"
	StateCommitted            PublishState = "committed"
	StateRestoredToMain       PublishState = "restored-to-main"
)

// PublishRequest asks for a branch to be replicated into a target repository
type PublishRequest struct {
	Branch     string
	SourceRepo string
	TargetRepo string
}

// PublishResult describes a finished publish run.
// RestorationErr is set when checking out the default branch afterwards failed;
// it never changes Status. States lists the states the run went through.
type PublishResult struct {
	ChangedPaths   []string       `json:"changedPaths,omitempty" yaml:"changedPaths,omitempty"`
	CommitID       ObjectID       `json:"commitId,omitempty" yaml:"commitId,omitempty"`
	RestorationErr error          `json:"-" yaml:"-"`
	RunID          string         `json:"runId" yaml:"runId"`
	States         []PublishState `json:"-" yaml:"-"`
	Status         PublishStatus  `json:"status" yaml:"status"`
}

// PublishRecord is the persisted history entry of one publish run
type PublishRecord struct {
	Branch             string
	ChangedPaths       int
	CommitID           ObjectID
	ErrorDetail        string
	ErrorKind          ErrorKind
	FinishedAt         *time.Time
	ID                 string
	RestorationFailure string
	SourceRepo         string
	StartedAt          time.Time
	Status             PublishStatus
	TargetRepo         string
}

// IsFinished reports whether the run has completed
func (r PublishRecord) IsFinished() bool {
	return r.FinishedAt != nil
}

// Duration returns how long the run took, zero while still running
func (r PublishRecord) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
