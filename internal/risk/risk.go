// Package risk serves the compliance risk register: audit cases opened
// against taxpayers, listed and filtered on the admin risk page.
package risk

import (
	"context"
	"time"

	"taxonline/internal/timewindow"
)

// Risk levels as stored on audit cases.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
)

// Audit case statuses.
const (
	StatusOpen      = "Open"
	StatusInReview  = "In Review"
	StatusClosed    = "Closed"
	StatusEscalated = "Escalated"
)

// DefaultLimit caps the risk page listing.
const DefaultLimit = 200

// AuditCase is one audit opened against a taxpayer. TaxpayerName is joined
// from the individual or business profile at query time.
type AuditCase struct {
	ID           int64
	TPIN         string
	TaxpayerName string
	RiskLevel    string
	RiskScore    int
	Province     string
	Sector       string
	Status       string
	StartDate    time.Time
}

// Filter narrows the admin risk listing. Empty strings mean "all"; a zero
// Limit falls back to DefaultLimit.
type Filter struct {
	Window    timewindow.Window
	RiskLevel string
	Sector    string
	Status    string
	Limit     int
}

// Store is the audit case repository.
type Store interface {
	ListFiltered(ctx context.Context, f Filter) ([]AuditCase, error)
	CountOpen(ctx context.Context) (int, error)
}

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return DefaultLimit
	}
	return f.Limit
}

// matches compares filter values exactly, the same way the SQL store does.
func (f Filter) matches(c AuditCase) bool {
	if f.RiskLevel != "" && c.RiskLevel != f.RiskLevel {
		return false
	}
	if f.Sector != "" && c.Sector != f.Sector {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	return f.Window.Contains(c.StartDate)
}
