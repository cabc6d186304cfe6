// Package dashboard assembles the per-page data sets. Each page method runs
// its query set sequentially on the request context and reports the combined
// latency; a span wraps every set so a host tracer can see the fan-out.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"taxonline/internal/platform/metrics"
	"taxonline/internal/revenue"
	"taxonline/internal/risk"
	"taxonline/internal/taxpayer"
	"taxonline/internal/timewindow"
)

const recentLimit = 5

// Service runs the dashboard query sets.
type Service struct {
	taxpayers   taxpayer.Store
	returns     revenue.ReturnStore
	payments    revenue.PaymentStore
	assessments revenue.AssessmentStore
	notices     revenue.NoticeStore
	audits      risk.Store
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	now         func() time.Time
}

func NewService(
	taxpayers taxpayer.Store,
	returns revenue.ReturnStore,
	payments revenue.PaymentStore,
	assessments revenue.AssessmentStore,
	notices revenue.NoticeStore,
	audits risk.Store,
	m *metrics.Metrics,
) *Service {
	return &Service{
		taxpayers:   taxpayers,
		returns:     returns,
		payments:    payments,
		assessments: assessments,
		notices:     notices,
		audits:      audits,
		metrics:     m,
		tracer:      otel.Tracer("taxonline/dashboard"),
		now:         time.Now,
	}
}

// TaxpayerSummary is the individual portal dashboard data set.
type TaxpayerSummary struct {
	TotalPaid          float64
	OutstandingReturns int
	Notices            []revenue.Notice
}

func (s *Service) TaxpayerSummary(ctx context.Context, tpin string) (TaxpayerSummary, error) {
	ctx, done := s.startSet(ctx, "taxpayer_summary", tpin)
	defer done()

	var sum TaxpayerSummary
	var err error
	if sum.TotalPaid, err = s.payments.TotalPaidByTPIN(ctx, tpin); err != nil {
		return TaxpayerSummary{}, fmt.Errorf("taxpayer summary: %w", err)
	}
	if sum.OutstandingReturns, err = s.returns.CountByTPIN(ctx, tpin, revenue.ReturnPending); err != nil {
		return TaxpayerSummary{}, fmt.Errorf("taxpayer summary: %w", err)
	}
	if sum.Notices, err = s.notices.RecentByTPIN(ctx, tpin, recentLimit); err != nil {
		return TaxpayerSummary{}, fmt.Errorf("taxpayer summary: %w", err)
	}
	return sum, nil
}

// FilingCompliance is the taxpayer compliance page data set.
type FilingCompliance struct {
	Filed int
	Total int
}

// Rate is the filed share in percent, one decimal. 7 of 10 is 70.
func (c FilingCompliance) Rate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(int(float64(c.Filed)/float64(c.Total)*1000+0.5)) / 10
}

func (s *Service) FilingCompliance(ctx context.Context, tpin string) (FilingCompliance, error) {
	ctx, done := s.startSet(ctx, "filing_compliance", tpin)
	defer done()

	var c FilingCompliance
	var err error
	if c.Filed, err = s.returns.CountByTPIN(ctx, tpin, revenue.ReturnFiled); err != nil {
		return FilingCompliance{}, fmt.Errorf("filing compliance: %w", err)
	}
	if c.Total, err = s.returns.CountByTPIN(ctx, tpin); err != nil {
		return FilingCompliance{}, fmt.Errorf("filing compliance: %w", err)
	}
	return c, nil
}

// BusinessSummary is the business portal dashboard data set.
type BusinessSummary struct {
	PendingReturns     int
	OutstandingBalance float64
	OverduePayments    int
	RecentReturns      []revenue.TaxReturn
	RecentNotices      []revenue.Notice
}

func (s *Service) BusinessSummary(ctx context.Context, tpin string) (BusinessSummary, error) {
	ctx, done := s.startSet(ctx, "business_summary", tpin)
	defer done()

	var sum BusinessSummary
	var err error
	if sum.PendingReturns, err = s.returns.CountByTPIN(ctx, tpin, revenue.ReturnPending); err != nil {
		return BusinessSummary{}, fmt.Errorf("business summary: %w", err)
	}
	if sum.OutstandingBalance, err = s.assessments.UnpaidTotalByTPIN(ctx, tpin); err != nil {
		return BusinessSummary{}, fmt.Errorf("business summary: %w", err)
	}
	if sum.OverduePayments, err = s.payments.OverdueCountByTPIN(ctx, tpin); err != nil {
		return BusinessSummary{}, fmt.Errorf("business summary: %w", err)
	}
	if sum.RecentReturns, err = s.returns.RecentByTPIN(ctx, tpin, recentLimit); err != nil {
		return BusinessSummary{}, fmt.Errorf("business summary: %w", err)
	}
	if sum.RecentNotices, err = s.notices.RecentByTPIN(ctx, tpin, recentLimit); err != nil {
		return BusinessSummary{}, fmt.Errorf("business summary: %w", err)
	}
	return sum, nil
}

// AdminOverview is the admin dashboard counter set. ComplianceRate here is
// the register-wide active share, not the filing rate.
type AdminOverview struct {
	Taxpayers      taxpayer.StatusCounts
	ReturnsFiled   int
	TotalCollected float64
	OpenAudits     int
}

// ComplianceRate is the active share of the register, in percent.
func (o AdminOverview) ComplianceRate() float64 {
	return o.Taxpayers.ComplianceRate()
}

func (s *Service) AdminOverview(ctx context.Context) (AdminOverview, error) {
	ctx, done := s.startSet(ctx, "admin_overview", "")
	defer done()

	var o AdminOverview
	var err error
	if o.Taxpayers, err = s.taxpayers.CountByStatus(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("admin overview: %w", err)
	}
	if o.ReturnsFiled, err = s.returns.CountByStatus(ctx, revenue.ReturnFiled); err != nil {
		return AdminOverview{}, fmt.Errorf("admin overview: %w", err)
	}
	if o.TotalCollected, err = s.payments.TotalCollected(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("admin overview: %w", err)
	}
	if o.OpenAudits, err = s.audits.CountOpen(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("admin overview: %w", err)
	}
	return o, nil
}

// Analytics is the admin analytics page data set.
type Analytics struct {
	Taxpayers      taxpayer.StatusCounts
	MonthlyRevenue []revenue.MonthlyRevenue
	Window         timewindow.Window
}

func (s *Service) Analytics(ctx context.Context, window timewindow.Window) (Analytics, error) {
	ctx, done := s.startSet(ctx, "admin_analytics", "")
	defer done()

	a := Analytics{Window: window}
	var err error
	if a.Taxpayers, err = s.taxpayers.CountByStatus(ctx); err != nil {
		return Analytics{}, fmt.Errorf("admin analytics: %w", err)
	}
	if a.MonthlyRevenue, err = s.payments.MonthlyTotals(ctx, window); err != nil {
		return Analytics{}, fmt.Errorf("admin analytics: %w", err)
	}
	return a, nil
}

// RiskCases is the admin risk page data set.
func (s *Service) RiskCases(ctx context.Context, f risk.Filter) ([]risk.AuditCase, error) {
	ctx, done := s.startSet(ctx, "admin_risk", "")
	defer done()

	cases, err := s.audits.ListFiltered(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("admin risk cases: %w", err)
	}
	return cases, nil
}

// startSet opens the span and the latency observation for one page query set.
func (s *Service) startSet(ctx context.Context, name, tpin string) (context.Context, func()) {
	attrs := []attribute.KeyValue{attribute.String("dashboard.page", name)}
	if tpin != "" {
		attrs = append(attrs, attribute.String("taxpayer.tpin", tpin))
	}
	ctx, span := s.tracer.Start(ctx, "dashboard."+name, trace.WithAttributes(attrs...))
	start := s.now()
	return ctx, func() {
		s.metrics.QueryDuration.Observe(float64(s.now().Sub(start).Microseconds()) / 1000)
		span.End()
	}
}
