package lock

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeys(t *testing.T) {
	keys := normalizeKeys([]string{"/repos/target/", "/repos/source", "/repos/target", "/repos/./source"})

	assert.Equal(t, []string{"/repos/source", "/repos/target"}, keys)
}

func TestLock_SerializesSameLocation(t *testing.T) {
	locker := NewRepoLocker("")
	ctx := context.Background()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Lock(ctx, "/repos/target")
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
}

func TestLock_DifferentLocationsDoNotBlock(t *testing.T) {
	locker := NewRepoLocker("")
	ctx := context.Background()

	release, err := locker.Lock(ctx, "/repos/a")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	other, err := locker.Lock(ctx, "/repos/b")
	require.NoError(t, err)
	other()
}

func TestLock_SameSourceAndTargetLocksOnce(t *testing.T) {
	locker := NewRepoLocker("")

	release, err := locker.Lock(context.Background(), "/repos/one", "/repos/one")

	require.NoError(t, err)
	release()
}

func TestLock_ContextCancelledWhileWaiting(t *testing.T) {
	locker := NewRepoLocker("")

	release, err := locker.Lock(context.Background(), "/repos/a")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "/repos/b", "/repos/a")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// /repos/b must have been released again
	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	b, err := locker.Lock(ctx2, "/repos/b")
	require.NoError(t, err)
	b()
}

func TestLock_ReleaseIsIdempotent(t *testing.T) {
	locker := NewRepoLocker("")

	release, err := locker.Lock(context.Background(), "/repos/a")
	require.NoError(t, err)
	release()
	release()

	again, err := locker.Lock(context.Background(), "/repos/a")
	require.NoError(t, err)
	again()
}

func TestLock_FileLockAcrossLockers(t *testing.T) {
	dir := t.TempDir()
	first := NewRepoLocker(dir)
	second := NewRepoLocker(dir)
	second.retryInterval = 5 * time.Millisecond

	release, err := first.Lock(context.Background(), "/repos/target")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, lockFileName("/repos/target"), entries[0].Name())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = second.Lock(ctx, "/repos/target")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	again, err := second.Lock(ctx2, "/repos/target")
	require.NoError(t, err)
	again()
}
