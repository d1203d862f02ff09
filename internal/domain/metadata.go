package domain

import "time"

// CommitMetadata is the structured data carried by a commit message.
// Empty fields mean the marker was absent, which is not an error.
type CommitMetadata struct {
	ContributionName string
	Signoff          *Identity
	SignoffLine      string
	SubDirectory     string
	Summary          string
}

// IsFirstSubmission reports whether the message carries no contribution name yet
func (m CommitMetadata) IsFirstSubmission() bool {
	return m.ContributionName == ""
}

// BranchRecord is the display view of one branch
type BranchRecord struct {
	AttributedAuthor *string   `json:"attributedAuthor" yaml:"attributedAuthor"`
	CreatedAt        time.Time `json:"-" yaml:"-"`
	CreatedAtMillis  int64     `json:"creationTimestampMillis" yaml:"creationTimestampMillis"`
	Name             string    `json:"name" yaml:"name"`
	Summary          string    `json:"messageSummary" yaml:"messageSummary"`
	TipID            ObjectID  `json:"-" yaml:"-"`
}

// SkippedBranch is a branch left out of a listing because its tip could not be read
type SkippedBranch struct {
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

// BranchListing is the result of listing a repository's branches
type BranchListing struct {
	Branches []BranchRecord  `json:"branches" yaml:"branches"`
	Skipped  []SkippedBranch `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// ChangesView is what a review screen shows for one branch
type ChangesView struct {
	AuthorEmail      string    `json:"commitAuthorEmail" yaml:"commitAuthorEmail"`
	AuthorName       string    `json:"commitAuthorName" yaml:"commitAuthorName"`
	Branch           string    `json:"branch" yaml:"branch"`
	ContributionName string    `json:"contributionName,omitempty" yaml:"contributionName,omitempty"`
	Entries          ChangeSet `json:"changeEntries" yaml:"changeEntries"`
	SubDirectory     string    `json:"subDirectory,omitempty" yaml:"subDirectory,omitempty"`
	Summary          string    `json:"commitSummary" yaml:"commitSummary"`
}
