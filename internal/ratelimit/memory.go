package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback counter used when redis is absent or
// unreachable. Windows are fixed, not sliding.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &memoryEntry{count: 1, expiresAt: now.Add(window)}
		s.entries[key] = entry
		return limit >= 1, nil
	}

	entry.count++
	return entry.count <= limit, nil
}
