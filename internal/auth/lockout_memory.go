package auth

import (
	"context"
	"sync"
	"time"
)

var _ LockoutStore = (*MemoryLockoutStore)(nil)

// MemoryLockoutStore counts failures in a map. Used by unit tests and local
// development when Redis is not configured.
type MemoryLockoutStore struct {
	mu      sync.Mutex
	entries map[string]lockoutEntry
	now     func() time.Time
}

type lockoutEntry struct {
	count   int
	resetAt time.Time
}

func NewMemoryLockoutStore() *MemoryLockoutStore {
	return &MemoryLockoutStore{
		entries: make(map[string]lockoutEntry),
		now:     time.Now,
	}
}

func (s *MemoryLockoutStore) RecordFailure(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || !entry.resetAt.After(s.now()) {
		entry = lockoutEntry{resetAt: s.now().Add(window)}
	}
	entry.count++
	s.entries[key] = entry
	return entry.count, nil
}

func (s *MemoryLockoutStore) Failures(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return 0, nil
	}
	if !entry.resetAt.After(s.now()) {
		delete(s.entries, key)
		return 0, nil
	}
	return entry.count, nil
}

func (s *MemoryLockoutStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
