package services

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"taxsync/internal/domain"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
)

// TreeWalker flattens a commit's tree into a path map
type TreeWalker struct {
	concurrency int
}

// NewTreeWalker creates a walker that reads at most concurrency subtrees at once.
// Values below one walk sequentially.
func NewTreeWalker(concurrency int) *TreeWalker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &TreeWalker{concurrency: concurrency}
}

// Walk returns every blob path reachable from the root tree of commitID.
// Sibling subtrees are read in parallel; the result does not depend on scheduling.
func (w *TreeWalker) Walk(ctx context.Context, reader ports.ObjectReader, commitID domain.ObjectID) (domain.PathMap, error) {
	ctx, span := tracer.Start(ctx, "TreeWalker::Walk", trace.WithAttributes(
		attribute.String("commit", commitID.String()),
	))
	defer span.End()

	commit, err := reader.ReadCommit(ctx, commitID)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	paths := domain.PathMap{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	var visit func(treeID domain.ObjectID, prefix string) error
	visit = func(treeID domain.ObjectID, prefix string) error {
		entries, err := reader.ReadTreeEntries(gctx, treeID, "")
		if err != nil {
			return err
		}

		for _, e := range entries {
			p := joinPath(prefix, e.Name)
			switch e.Type {
			case domain.ObjectBlob:
				mu.Lock()
				paths[p] = e.ID
				mu.Unlock()
			case domain.ObjectTree:
				id := e.ID
				// All workers busy: descend inline rather than wait for a slot
				if !g.TryGo(func() error { return visit(id, p) }) {
					if err := visit(id, p); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}

	g.Go(func() error { return visit(commit.TreeID, "") })
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to walk commit %s: %w", commitID.Short(), err)
	}

	span.SetAttributes(attribute.Int("paths", len(paths)))
	logging.Logger.Debug("Walked commit tree", "commit", commitID.Short(), "paths", len(paths))
	return paths, nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
