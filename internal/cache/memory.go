package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a thread-safe in-process Results with per-entry expiry. Expired
// entries are dropped lazily on Get and on Set once the map reaches limit.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]memoryEntry
	limit int
	now   func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time // zero means never
}

// NewMemory creates a Memory holding at most limit entries. When full, the
// expired entries are swept and if none were, an arbitrary one is evicted.
// limit <= 0 means unbounded.
func NewMemory(limit int) *Memory {
	return &Memory{
		data:  make(map[string]memoryEntry),
		limit: limit,
		now:   time.Now,
	}
}

// Get retrieves a value that has not expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if m.expiredLocked(e) {
		m.mu.Lock()
		if cur, ok := m.data[key]; ok && m.expiredLocked(cur) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores a copy of value.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists && m.limit > 0 && len(m.data) >= m.limit {
		m.evictLocked()
	}
	m.data[key] = e
	return nil
}

// evictLocked makes room for one entry. MUST be called with the write lock.
func (m *Memory) evictLocked() {
	for k, e := range m.data {
		if m.expiredLocked(e) {
			delete(m.data, k)
		}
	}
	if len(m.data) < m.limit {
		return
	}
	for k := range m.data {
		delete(m.data, k)
		return
	}
}

func (m *Memory) expiredLocked(e memoryEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}

// Invalidate clears all cached data.
func (m *Memory) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]memoryEntry)
}

// Len returns the number of entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
