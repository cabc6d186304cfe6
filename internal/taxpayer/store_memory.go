package taxpayer

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taxonline/pkg/platform/sentinel"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory taxpayer register for unit tests and local
// development without Postgres.
type MemoryStore struct {
	mu          sync.RWMutex
	nextID      int64
	individuals map[int64]Individual
	businesses  map[int64]Business
	statuses    map[string]string // tpin -> status
	registered  map[string]time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		nextID:      1,
		individuals: make(map[int64]Individual),
		businesses:  make(map[int64]Business),
		statuses:    make(map[string]string),
		registered:  make(map[string]time.Time),
	}
}

func (s *MemoryStore) CreateIndividual(_ context.Context, ind Individual) (Individual, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.statuses[ind.TPIN]; taken {
		return Individual{}, sentinel.ErrConflict
	}
	for _, existing := range s.individuals {
		if strings.EqualFold(existing.Email, ind.Email) {
			return Individual{}, sentinel.ErrConflict
		}
	}

	ind.ID = s.nextID
	s.nextID++
	s.individuals[ind.ID] = ind
	s.statuses[ind.TPIN] = StatusActive
	s.registered[ind.TPIN] = time.Now()
	return ind, nil
}

func (s *MemoryStore) CreateBusiness(_ context.Context, biz Business) (Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.statuses[biz.TPIN]; taken {
		return Business{}, sentinel.ErrConflict
	}
	for _, existing := range s.businesses {
		if strings.EqualFold(existing.Email, biz.Email) {
			return Business{}, sentinel.ErrConflict
		}
	}

	biz.ID = s.nextID
	s.nextID++
	s.businesses[biz.ID] = biz
	s.statuses[biz.TPIN] = StatusActive
	s.registered[biz.TPIN] = time.Now()
	return biz, nil
}

func (s *MemoryStore) FindIndividualByEmail(_ context.Context, email string) (Individual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ind := range s.individuals {
		if strings.EqualFold(ind.Email, email) {
			return ind, nil
		}
	}
	return Individual{}, sentinel.ErrNotFound
}

func (s *MemoryStore) FindIndividualByID(_ context.Context, id int64) (Individual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ind, ok := s.individuals[id]; ok {
		return ind, nil
	}
	return Individual{}, sentinel.ErrNotFound
}

func (s *MemoryStore) FindBusinessByEmail(_ context.Context, email string) (Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, biz := range s.businesses {
		if strings.EqualFold(biz.Email, email) {
			return biz, nil
		}
	}
	return Business{}, sentinel.ErrNotFound
}

func (s *MemoryStore) FindBusinessByID(_ context.Context, id int64) (Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if biz, ok := s.businesses[id]; ok {
		return biz, nil
	}
	return Business{}, sentinel.ErrNotFound
}

// SetStatus overrides a taxpayer's status; used by tests to stage dormant and
// suspended register entries.
func (s *MemoryStore) SetStatus(tpin, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.statuses[tpin]; ok {
		s.statuses[tpin] = status
	}
}

func (s *MemoryStore) CountByStatus(_ context.Context) (StatusCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c StatusCounts
	for _, status := range s.statuses {
		c.Total++
		switch status {
		case StatusActive:
			c.Active++
		case StatusDormant:
			c.Dormant++
		case StatusSuspended:
			c.Suspended++
		}
	}
	return c, nil
}

func (s *MemoryStore) ListDirectory(_ context.Context, limit int) ([]DirectoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []DirectoryEntry
	for _, ind := range s.individuals {
		entries = append(entries, DirectoryEntry{
			TPIN:         ind.TPIN,
			Name:         ind.FullName(),
			Email:        ind.Email,
			TaxpayerType: TypeIndividual,
			Registered:   s.registered[ind.TPIN],
			Status:       s.statuses[ind.TPIN],
		})
	}
	for _, biz := range s.businesses {
		entries = append(entries, DirectoryEntry{
			TPIN:         biz.TPIN,
			Name:         biz.Name,
			Email:        biz.Email,
			TaxpayerType: TypeBusiness,
			Registered:   s.registered[biz.TPIN],
			Status:       s.statuses[biz.TPIN],
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TPIN < entries[j].TPIN })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
