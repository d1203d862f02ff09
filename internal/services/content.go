package services

import (
	"context"
	"fmt"
	"path"
	"unicode/utf8"

	"taxsync/internal/domain"
	"taxsync/internal/ports"
)

// ReadFileAt returns the text of p as it existed at commitID.
// Content that is not valid UTF-8 is rejected with KindInvalidContent.
func ReadFileAt(ctx context.Context, reader ports.ObjectReader, commitID domain.ObjectID, p string) (string, error) {
	commit, err := reader.ReadCommit(ctx, commitID)
	if err != nil {
		return "", err
	}

	dir, name := path.Split(p)
	entries, err := reader.ReadTreeEntries(ctx, commit.TreeID, dir)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if e.Name != name {
			continue
		}
		if e.Type != domain.ObjectBlob {
			return "", domain.NotFoundError("read file", fmt.Errorf("%s is a directory at %s", p, commitID.Short()))
		}
		data, err := reader.ReadBlob(ctx, e.ID)
		if err != nil {
			return "", err
		}
		if !utf8.Valid(data) {
			return "", domain.NewError(domain.KindInvalidContent, "read file", fmt.Errorf("%s is not UTF-8 text", p))
		}
		return string(data), nil
	}

	return "", domain.NotFoundError("read file", fmt.Errorf("%s does not exist at %s", p, commitID.Short()))
}
