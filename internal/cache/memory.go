package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemorySize = 128

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process LRU with expiry. The LRU enforces the default
// TTL; a shorter per-call TTL is checked on read.
type Memory struct {
	lru *expirable.LRU[string, memoryEntry]
	ttl time.Duration
	now func() time.Time
}

// NewMemory returns a Memory holding at most size entries, each living at
// most ttl. A zero ttl keeps entries until they are evicted by size.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = defaultMemorySize
	}
	return &Memory{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, ttl),
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns a copy of the stored bytes or ErrCacheMiss.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.lru.Remove(key)
		return nil, ErrCacheMiss
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores a copy of value. ttl <= 0 falls back to the cache default.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.ttl
	}
	e := memoryEntry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.lru.Add(key, e)
	return nil
}

// Del removes key.
func (m *Memory) Del(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Len reports the number of live entries.
func (m *Memory) Len() int { return m.lru.Len() }

// Close drops every entry.
func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
