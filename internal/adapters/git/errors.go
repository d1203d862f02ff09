package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"taxsync/internal/domain"
)

// notFoundErrors are the go-git conditions that mean a ref, object or path is absent
var notFoundErrors = []error{
	gogit.ErrBranchNotFound,
	gogit.ErrRepositoryNotExists,
	object.ErrDirectoryNotFound,
	object.ErrEntryNotFound,
	object.ErrFileNotFound,
	plumbing.ErrObjectNotFound,
	plumbing.ErrReferenceNotFound,
}

// mapError turns go-git failures into domain errors.
// Missing refs and objects become KindNotFound; everything else is wrapped as is.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return domain.NotFoundError(op, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
