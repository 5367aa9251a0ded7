package session

import (
	"context"
	"sync"
	"time"

	"symptom-checker/pkg"
)

type memoryEntry struct {
	outcome pkg.Outcome
	expires time.Time
}

// MemoryStore is the in-process Store.  Entries older than the session TTL
// are treated as absent and swept on write.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Put(_ context.Context, sessionID string, outcome pkg.Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweep(now)
	m.entries[sessionID] = memoryEntry{outcome: outcome, expires: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) TakeAndClear(_ context.Context, sessionID string) (pkg.Outcome, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[sessionID]
	if !ok {
		return pkg.Outcome{}, false, nil
	}
	delete(m.entries, sessionID)
	if !m.now().Before(e.expires) {
		return pkg.Outcome{}, false, nil
	}
	return e.outcome, true, nil
}

// Len reports the number of pending entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryStore) sweep(now time.Time) {
	for id, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, id)
		}
	}
}
