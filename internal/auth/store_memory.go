package auth

import (
	"context"
	"sync"
	"time"

	"taxonline/pkg/platform/sentinel"
)

var _ SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore keeps sessions in a map. Used by unit tests and local
// development when Redis is not configured.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) Find(_ context.Context, id string) (Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, sentinel.ErrNotFound
	}
	if session.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return Session{}, sentinel.ErrNotFound
	}
	return session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the live session count; test helper.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
