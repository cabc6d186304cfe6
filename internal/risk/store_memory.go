package risk

import (
	"context"
	"sort"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory audit case register for unit tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	cases  []AuditCase
}

func NewMemory() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Add appends a case; test seeding helper.
func (s *MemoryStore) Add(c AuditCase) AuditCase {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	s.cases = append(s.cases, c)
	return c
}

func (s *MemoryStore) ListFiltered(_ context.Context, f Filter) ([]AuditCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []AuditCase
	for _, c := range s.cases {
		if f.matches(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RiskScore != out[j].RiskScore {
			return out[i].RiskScore > out[j].RiskScore
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	if len(out) > f.limit() {
		out = out[:f.limit()]
	}
	return out, nil
}

func (s *MemoryStore) CountOpen(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, c := range s.cases {
		if c.Status == StatusOpen {
			count++
		}
	}
	return count, nil
}
