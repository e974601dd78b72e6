package game

import (
	"context"
	"sync"
	"time"
)

type (
	userLock struct {
		ch   chan struct{}
		refs int
	}

	// keyedLocks serializes work per user. Entries are created on demand and
	// dropped once the last holder releases, so the map stays bounded by the
	// number of users with in-flight requests.
	keyedLocks struct {
		mu    sync.Mutex
		locks map[string]*userLock
	}
)

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*userLock)}
}

// acquire blocks until the per-key lock is held, the timeout elapses, or ctx
// is cancelled. On success the returned func releases the lock and must be
// called exactly once.
func (l *keyedLocks) acquire(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &userLock{ch: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case entry.ch <- struct{}{}:
		return func() {
			<-entry.ch
			l.release(key, entry)
		}, nil
	case <-timer.C:
		l.release(key, entry)
		return nil, ErrLockTimeout
	case <-ctx.Done():
		l.release(key, entry)
		return nil, ctx.Err()
	}
}

func (l *keyedLocks) release(key string, entry *userLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}
