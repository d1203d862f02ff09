// Package lock serializes publish runs per repository location, both inside
// one process and across processes sharing a lock directory.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"taxsync/internal/config"
	"taxsync/internal/logging"
	"taxsync/internal/ports"
)

const defaultRetryInterval = 50 * time.Millisecond

// RepoLocker implements ports.RepoLocker with one weighted semaphore per
// location and, when dir is set, an exclusive lock file per location
type RepoLocker struct {
	dir           string
	mu            sync.Mutex
	retryInterval time.Duration
	sems          map[string]*semaphore.Weighted
}

// Verify interface compliance at compile time
var _ ports.RepoLocker = (*RepoLocker)(nil)

// NewRepoLocker creates a locker. An empty dir keeps locking in-process only.
func NewRepoLocker(dir string) *RepoLocker {
	return &RepoLocker{
		dir:           dir,
		retryInterval: defaultRetryInterval,
		sems:          make(map[string]*semaphore.Weighted),
	}
}

// Lock implements RepoLocker.Lock.
// Locations are deduplicated and taken in sorted order so two runs locking the
// same pair can never deadlock. On error nothing stays locked.
func (l *RepoLocker) Lock(ctx context.Context, locations ...string) (func(), error) {
	keys := normalizeKeys(locations)
	logging.Logger.Debug("Acquiring repository locks", "keys", keys)

	var held []func()
	releaseAll := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}

	for _, key := range keys {
		release, err := l.lockOne(ctx, key)
		if err != nil {
			releaseAll()
			return nil, fmt.Errorf("failed to lock repository %s: %w", key, err)
		}
		held = append(held, release)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseAll()
			logging.Logger.Debug("Released repository locks", "keys", keys)
		})
	}, nil
}

func (l *RepoLocker) lockOne(ctx context.Context, key string) (func(), error) {
	sem := l.semaphore(key)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	if l.dir == "" {
		return func() { sem.Release(1) }, nil
	}

	file, err := l.acquireFile(ctx, key)
	if err != nil {
		sem.Release(1)
		return nil, err
	}

	return func() {
		if err := unlockFile(file); err != nil {
			logging.Logger.Warn("Failed to unlock repository lock file", "key", key, "file", file.Name(), "error", err)
		}
		file.Close()
		sem.Release(1)
	}, nil
}

func (l *RepoLocker) semaphore(key string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()

	sem, ok := l.sems[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.sems[key] = sem
	}
	return sem
}

// acquireFile polls a non-blocking file lock until it succeeds or ctx ends
func (l *RepoLocker) acquireFile(ctx context.Context, key string) (*os.File, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	path := filepath.Join(l.dir, lockFileName(key))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := tryLockFile(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to lock %s: %w", path, err)
		}
		if ok {
			return file, nil
		}

		logging.Logger.Debug("Repository lock busy, waiting", "key", key, "file", path)
		select {
		case <-ctx.Done():
			file.Close()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// normalizeKeys canonicalizes, deduplicates and sorts locations
func normalizeKeys(locations []string) []string {
	seen := make(map[string]struct{}, len(locations))
	keys := make([]string, 0, len(locations))
	for _, loc := range locations {
		key := config.CanonicalPath(loc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func lockFileName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8]) + ".lock"
}
