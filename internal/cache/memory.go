// Package cache provides an in-process credential cache with TTL expiry.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/avshem/docvault/internal/model"
)

var _ model.CredentialCache = (*Memory)(nil)

type entry struct {
	hash      string
	expiresAt time.Time
}

// Memory is a thread-safe login -> password hash cache. Entries expire at
// read time; no eviction goroutine is needed for the small keyspace a login
// path produces.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Lookup(_ context.Context, login string) (string, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[login]
	m.mu.RUnlock()

	if !ok {
		return "", false, nil
	}

	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Store may have
		// refreshed the entry.
		if cur, ok := m.entries[login]; ok && m.now().After(cur.expiresAt) {
			delete(m.entries, login)
		}
		m.mu.Unlock()
		return "", false, nil
	}

	return e.hash, true, nil
}

func (m *Memory) Store(_ context.Context, login, hash string, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[login] = entry{
		hash:      hash,
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

// Len reports the number of entries including not-yet-collected expired ones.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
