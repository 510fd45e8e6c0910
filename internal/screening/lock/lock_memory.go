package lock

import (
	"context"
	"sync"
	"time"

	"seawatch/pkg/platform/sentinel"
)

// InMemoryLock is a process-local lock with the same semantics as RedisLock.
type InMemoryLock struct {
	mu    sync.Mutex
	held  map[string]time.Time
	nowFn func() time.Time
}

// NewInMemory creates an InMemoryLock.
func NewInMemory() *InMemoryLock {
	return &InMemoryLock{held: make(map[string]time.Time), nowFn: time.Now}
}

// Acquire takes the lock for key or returns sentinel.ErrAlreadyRunning.
func (l *InMemoryLock) Acquire(_ context.Context, key string, ttl time.Duration) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.nowFn()
	if expires, ok := l.held[key]; ok && now.Before(expires) {
		return nil, sentinel.ErrAlreadyRunning
	}
	expires := now.Add(ttl)
	l.held[key] = expires
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key] == expires {
			delete(l.held, key)
		}
		return nil
	}, nil
}
