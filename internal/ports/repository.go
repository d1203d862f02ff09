package ports

import (
	"context"

	"taxsync/internal/domain"
)

// ObjectReader reads commits, trees and blobs from a repository's object database
type ObjectReader interface {
	ListBranches(ctx context.Context) ([]string, error)
	ReadBlob(ctx context.Context, id domain.ObjectID) ([]byte, error)
	ReadCommit(ctx context.Context, id domain.ObjectID) (*domain.Commit, error)
	ReadTreeEntries(ctx context.Context, treeID domain.ObjectID, subpath string) ([]domain.TreeEntry, error)
	ResolveRef(ctx context.Context, name string) (domain.ObjectID, error)
}

// BranchManager switches, creates and deletes branches of a working copy
type BranchManager interface {
	BranchExists(ctx context.Context, name string) (bool, error)
	Checkout(ctx context.Context, name string, force bool) error
	CreateBranch(ctx context.Context, name, from string) error
	CurrentBranch(ctx context.Context) (string, error)
	DeleteBranch(ctx context.Context, name string) error
}

// WorktreeWriter reads and mutates the checked-out working tree.
// Paths are '/'-separated and relative to the repository root.
type WorktreeWriter interface {
	Commit(ctx context.Context, message string, author domain.Identity) (domain.ObjectID, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	RemoveFile(ctx context.Context, path string) error
	Stage(ctx context.Context, paths []string) error
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Repository is the composite interface
type Repository interface {
	BranchManager
	ObjectReader
	WorktreeWriter
	Location() string
}

// RepositoryOpener opens repositories by location
type RepositoryOpener interface {
	Open(ctx context.Context, location string) (Repository, error)
}

// RepoLocker serializes access to repository locations.
// The returned release function must be called exactly once.
type RepoLocker interface {
	Lock(ctx context.Context, locations ...string) (release func(), err error)
}

// CommitMessageCodec isolates the commit message metadata convention from callers
type CommitMessageCodec interface {
	// Compose builds a message from free-text Summary, fields and sign-off
	Compose(meta domain.CommitMetadata) string
	Identity(message string) (domain.Identity, error)
	Metadata(message string) domain.CommitMetadata
	// Republish strips the sign-off trailer and re-derives it from id
	Republish(message string, id domain.Identity) string
}
