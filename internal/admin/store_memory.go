package admin

import (
	"context"
	"strings"
	"sync"

	"taxonline/pkg/platform/sentinel"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps officer accounts in memory for tests and local runs.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	admins map[int64]Admin
}

func NewMemory() *MemoryStore {
	return &MemoryStore{nextID: 1, admins: make(map[int64]Admin)}
}

func (s *MemoryStore) Create(_ context.Context, a Admin) (Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return Admin{}, sentinel.ErrConflict
		}
	}
	a.ID = s.nextID
	s.nextID++
	s.admins[a.ID] = a
	return a, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return Admin{}, sentinel.ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.admins[id]; ok {
		return a, nil
	}
	return Admin{}, sentinel.ErrNotFound
}
