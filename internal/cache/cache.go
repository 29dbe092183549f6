// Package cache memoizes projection results by input key.
package cache

import (
	"context"
	"sync"
	"time"
)

// Repository stores opaque values by key. A zero ttl means no expiry.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process Repository safe for concurrent use. Expired
// entries are dropped lazily on read and when the store reaches MaxEntries.
type Memory struct {
	MaxEntries int

	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// DefaultMaxEntries bounds a Memory cache created with NewMemory.
const DefaultMaxEntries = 4096

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{MaxEntries: DefaultMaxEntries, entries: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]entry)
	}
	if m.now == nil {
		m.now = time.Now
	}
	if _, exists := m.entries[key]; !exists && m.MaxEntries > 0 && len(m.entries) >= m.MaxEntries {
		m.evict()
	}
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Len returns the number of stored entries. Expired entries count until
// they are swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// evict removes expired entries, or an arbitrary one when none have expired.
func (m *Memory) evict() {
	now := m.now()
	removed := false
	for k, e := range m.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.entries, k)
			removed = true
		}
	}
	if removed {
		return
	}
	for k := range m.entries {
		delete(m.entries, k)
		return
	}
}
