package git

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
)

// ResolveRef implements ObjectReader.ResolveRef.
// Names are short branch names, matching Checkout and BranchExists.
func (r *GoGitRepository) ResolveRef(ctx context.Context, name string) (domain.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return "", mapError(fmt.Sprintf("resolve ref %s", name), err)
	}
	return domain.ObjectID(ref.Hash().String()), nil
}

// ReadCommit implements ObjectReader.ReadCommit
func (r *GoGitRepository) ReadCommit(ctx context.Context, id domain.ObjectID) (*domain.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, err := parseHash(id)
	if err != nil {
		return nil, err
	}

	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, mapError(fmt.Sprintf("read commit %s", id.Short()), err)
	}
	return toDomainCommit(c), nil
}

// ReadTreeEntries implements ObjectReader.ReadTreeEntries.
// An empty subpath lists the tree itself. Submodule entries are skipped since
// their content lives in another repository.
func (r *GoGitRepository) ReadTreeEntries(ctx context.Context, treeID domain.ObjectID, subpath string) ([]domain.TreeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, err := parseHash(treeID)
	if err != nil {
		return nil, err
	}

	op := fmt.Sprintf("read tree %s", treeID.Short())
	tree, err := r.repo.TreeObject(hash)
	if err != nil {
		return nil, mapError(op, err)
	}

	subpath = strings.Trim(subpath, "/")
	if subpath != "" {
		if tree, err = tree.Tree(subpath); err != nil {
			return nil, mapError(fmt.Sprintf("%s at %s", op, subpath), err)
		}
	}

	entries := make([]domain.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		switch e.Mode {
		case filemode.Dir:
			entries = append(entries, domain.TreeEntry{ID: domain.ObjectID(e.Hash.String()), Name: e.Name, Type: domain.ObjectTree})
		case filemode.Regular, filemode.Executable, filemode.Symlink, filemode.Deprecated:
			entries = append(entries, domain.TreeEntry{ID: domain.ObjectID(e.Hash.String()), Name: e.Name, Type: domain.ObjectBlob})
		case filemode.Submodule:
			logging.Logger.Debug("Skipping submodule entry", "tree", treeID.Short(), "name", e.Name)
		default:
			logging.Logger.Warn("Skipping tree entry with unknown mode", "tree", treeID.Short(), "name", e.Name, "mode", e.Mode.String())
		}
	}
	return entries, nil
}

// ReadBlob implements ObjectReader.ReadBlob
func (r *GoGitRepository) ReadBlob(ctx context.Context, id domain.ObjectID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, err := parseHash(id)
	if err != nil {
		return nil, err
	}

	op := fmt.Sprintf("read blob %s", id.Short())
	blob, err := r.repo.BlobObject(hash)
	if err != nil {
		return nil, mapError(op, err)
	}

	rd, err := blob.Reader()
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rd.Close()

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, mapError(op, err)
	}
	return data, nil
}

// ListBranches implements ObjectReader.ListBranches
func (r *GoGitRepository) ListBranches(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	iter, err := r.repo.Branches()
	if err != nil {
		return nil, mapError("list branches", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, mapError("list branches", err)
	}

	sort.Strings(names)
	return names, nil
}

// parseHash rejects ids that are not full hex object names, which go-git
// would otherwise silently turn into a zero hash
func parseHash(id domain.ObjectID) (plumbing.Hash, error) {
	s := id.String()
	if _, err := hex.DecodeString(s); err != nil || len(s) != 2*len(plumbing.ZeroHash) {
		return plumbing.ZeroHash, domain.InvalidInputError("parse object id", fmt.Errorf("%q is not an object id", s))
	}
	return plumbing.NewHash(s), nil
}

func toDomainCommit(c *object.Commit) *domain.Commit {
	parents := make([]domain.ObjectID, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, domain.ObjectID(p.String()))
	}
	return &domain.Commit{
		Author:    toDomainSignature(c.Author),
		Committer: toDomainSignature(c.Committer),
		ID:        domain.ObjectID(c.Hash.String()),
		Message:   c.Message,
		ParentIDs: parents,
		TreeID:    domain.ObjectID(c.TreeHash.String()),
	}
}

func toDomainSignature(s object.Signature) domain.Signature {
	return domain.Signature{
		Identity: domain.Identity{Email: s.Email, Name: s.Name},
		When:     s.When,
	}
}
