package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedLocksSerializes(t *testing.T) {
	locks := newKeyedLocks()
	ctx := context.Background()

	release, err := locks.acquire(ctx, "user-1", time.Second)
	require.NoError(t, err)

	_, err = locks.acquire(ctx, "user-1", 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrLockTimeout)

	release()

	release, err = locks.acquire(ctx, "user-1", time.Second)
	require.NoError(t, err)
	release()
}

func TestKeyedLocksIndependentKeys(t *testing.T) {
	locks := newKeyedLocks()
	ctx := context.Background()

	release1, err := locks.acquire(ctx, "user-1", time.Second)
	require.NoError(t, err)
	defer release1()

	release2, err := locks.acquire(ctx, "user-2", 50*time.Millisecond)
	require.NoError(t, err, "different users must not contend")
	release2()
}

func TestKeyedLocksContextCancel(t *testing.T) {
	locks := newKeyedLocks()

	release, err := locks.acquire(context.Background(), "user-1", time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = locks.acquire(ctx, "user-1", 10*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeyedLocksCleanup(t *testing.T) {
	locks := newKeyedLocks()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locks.acquire(ctx, "user-1", 5*time.Second)
			if assert.NoError(t, err) {
				release()
			}
		}()
	}
	wg.Wait()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "entries are dropped once the last holder releases")
}
