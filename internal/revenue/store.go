package revenue

import (
	"context"

	"taxonline/internal/timewindow"
)

// ReturnStore queries tax returns, always scoped by TPIN except the
// admin-wide filed count.
type ReturnStore interface {
	ListByTPIN(ctx context.Context, tpin string) ([]TaxReturn, error)
	CountByTPIN(ctx context.Context, tpin string, statuses ...string) (int, error)
	RecentByTPIN(ctx context.Context, tpin string, limit int) ([]TaxReturn, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// PaymentStore queries payments.
type PaymentStore interface {
	ListByTPIN(ctx context.Context, tpin string) ([]Payment, error)
	TotalPaidByTPIN(ctx context.Context, tpin string) (float64, error)
	OverdueCountByTPIN(ctx context.Context, tpin string) (int, error)
	TotalCollected(ctx context.Context) (float64, error)
	MonthlyTotals(ctx context.Context, window timewindow.Window) ([]MonthlyRevenue, error)
}

// AssessmentStore queries assessments.
type AssessmentStore interface {
	UnpaidTotalByTPIN(ctx context.Context, tpin string) (float64, error)
}

// NoticeStore queries notices, per taxpayer and admin-wide.
type NoticeStore interface {
	RecentByTPIN(ctx context.Context, tpin string, limit int) ([]Notice, error)
	ListRecent(ctx context.Context, limit int) ([]Notice, error)
}
