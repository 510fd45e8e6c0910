package blacklist

import (
	"context"
	"sync"
	"time"

	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	textutil "seawatch/pkg/platform/strings"
)

type memoEntry struct {
	hit      models.BlacklistHit
	ok       bool
	storedAt time.Time
}

// Memo caches lookups from another BlacklistLookup for ttl. A single run asks
// for the same (port, country) pair many times; the memo keeps those off the
// database. Errors are never cached.
type Memo struct {
	mu      sync.RWMutex
	inner   ports.BlacklistLookup
	entries map[[2]string]memoEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemo wraps inner with a TTL memo.
func NewMemo(inner ports.BlacklistLookup, ttl time.Duration) *Memo {
	return &Memo{
		inner:   inner,
		entries: make(map[[2]string]memoEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memo) Severity(ctx context.Context, portName, countryName string) (models.BlacklistHit, bool, error) {
	key := [2]string{textutil.NameKey(portName), textutil.NameKey(countryName)}

	m.mu.RLock()
	cached, found := m.entries[key]
	m.mu.RUnlock()
	if found && m.now().Sub(cached.storedAt) < m.ttl {
		return cached.hit, cached.ok, nil
	}

	hit, ok, err := m.inner.Severity(ctx, portName, countryName)
	if err != nil {
		return models.BlacklistHit{}, false, err
	}

	m.mu.Lock()
	m.entries[key] = memoEntry{hit: hit, ok: ok, storedAt: m.now()}
	m.mu.Unlock()
	return hit, ok, nil
}

// Purge drops expired entries; returns how many were removed.
func (m *Memo) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, e := range m.entries {
		if m.now().Sub(e.storedAt) >= m.ttl {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// PurgeEvery runs Purge on every tick of interval until ctx is done.
// A non-positive interval falls back to the memo TTL.
func (m *Memo) PurgeEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.ttl
	}
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Purge()
		}
	}
}
