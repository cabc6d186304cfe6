package revenue

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"taxonline/internal/timewindow"
)

var (
	_ ReturnStore     = (*MemoryReturns)(nil)
	_ PaymentStore    = (*MemoryPayments)(nil)
	_ AssessmentStore = (*MemoryAssessments)(nil)
	_ NoticeStore     = (*MemoryNotices)(nil)
)

// MemoryReturns is an in-memory ReturnStore for unit tests.
type MemoryReturns struct {
	mu      sync.RWMutex
	nextID  int64
	returns []TaxReturn
}

func NewMemoryReturns() *MemoryReturns {
	return &MemoryReturns{nextID: 1}
}

// Add appends a return; test seeding helper.
func (s *MemoryReturns) Add(r TaxReturn) TaxReturn {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	s.returns = append(s.returns, r)
	return r
}

func (s *MemoryReturns) ListByTPIN(_ context.Context, tpin string) ([]TaxReturn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []TaxReturn
	for _, r := range s.returns {
		if r.TPIN == tpin {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TaxYear != out[j].TaxYear {
			return out[i].TaxYear > out[j].TaxYear
		}
		return out[i].DueDate.After(out[j].DueDate)
	})
	return out, nil
}

func (s *MemoryReturns) RecentByTPIN(ctx context.Context, tpin string, limit int) ([]TaxReturn, error) {
	out, err := s.ListByTPIN(ctx, tpin)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryReturns) CountByTPIN(_ context.Context, tpin string, statuses ...string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.returns {
		if r.TPIN != tpin {
			continue
		}
		if len(statuses) == 0 || slices.Contains(statuses, r.Status) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryReturns) CountByStatus(_ context.Context, status string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.returns {
		if r.Status == status {
			count++
		}
	}
	return count, nil
}

// MemoryPayments is an in-memory PaymentStore for unit tests.
type MemoryPayments struct {
	mu       sync.RWMutex
	nextID   int64
	payments []Payment
}

func NewMemoryPayments() *MemoryPayments {
	return &MemoryPayments{nextID: 1}
}

func (s *MemoryPayments) Add(p Payment) Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID
	s.nextID++
	s.payments = append(s.payments, p)
	return p
}

func (s *MemoryPayments) ListByTPIN(_ context.Context, tpin string) ([]Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Payment
	for _, p := range s.payments {
		if p.TPIN == tpin {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (s *MemoryPayments) TotalPaidByTPIN(_ context.Context, tpin string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.payments {
		if p.TPIN == tpin && p.Status == PaymentCompleted {
			total += p.Amount
		}
	}
	return total, nil
}

func (s *MemoryPayments) OverdueCountByTPIN(_ context.Context, tpin string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.payments {
		if p.TPIN == tpin && p.Status == PaymentOverdue {
			count++
		}
	}
	return count, nil
}

func (s *MemoryPayments) TotalCollected(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.payments {
		if p.Status == PaymentCompleted {
			total += p.Amount
		}
	}
	return total, nil
}

func (s *MemoryPayments) MonthlyTotals(_ context.Context, window timewindow.Window) ([]MonthlyRevenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byMonth := make(map[time.Time]float64)
	for _, p := range s.payments {
		if p.Status != PaymentCompleted || !window.Contains(p.PaidAt) {
			continue
		}
		month := time.Date(p.PaidAt.Year(), p.PaidAt.Month(), 1, 0, 0, 0, 0, p.PaidAt.Location())
		byMonth[month] += p.Amount
	}
	var totals []MonthlyRevenue
	for month, total := range byMonth {
		totals = append(totals, MonthlyRevenue{Month: month, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Month.Before(totals[j].Month) })
	return totals, nil
}

// MemoryAssessments is an in-memory AssessmentStore for unit tests.
type MemoryAssessments struct {
	mu          sync.RWMutex
	nextID      int64
	assessments []Assessment
}

func NewMemoryAssessments() *MemoryAssessments {
	return &MemoryAssessments{nextID: 1}
}

func (s *MemoryAssessments) Add(a Assessment) Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID
	s.nextID++
	s.assessments = append(s.assessments, a)
	return a
}

func (s *MemoryAssessments) UnpaidTotalByTPIN(_ context.Context, tpin string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, a := range s.assessments {
		if a.TPIN == tpin && a.Status == AssessmentUnpaid {
			total += a.Amount
		}
	}
	return total, nil
}

// MemoryNotices is an in-memory NoticeStore for unit tests.
type MemoryNotices struct {
	mu      sync.RWMutex
	nextID  int64
	notices []Notice
}

func NewMemoryNotices() *MemoryNotices {
	return &MemoryNotices{nextID: 1}
}

func (s *MemoryNotices) Add(n Notice) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID
	s.nextID++
	s.notices = append(s.notices, n)
	return n
}

func (s *MemoryNotices) RecentByTPIN(_ context.Context, tpin string, limit int) ([]Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Notice
	for _, n := range s.notices {
		if n.TPIN == tpin {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryNotices) ListRecent(_ context.Context, limit int) ([]Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notice, len(s.notices))
	copy(out, s.notices)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
