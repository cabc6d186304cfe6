package audit

import (
	"context"
	"sync"

	"taxonline/pkg/domain"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the trail in a slice for tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStore) RecentByActor(_ context.Context, kind domain.PrincipalKind, actorID int64, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for i := len(s.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		e := s.entries[i]
		if e.ActorKind == kind && e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns a copy of every entry; test helper.
func (s *MemoryStore) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
