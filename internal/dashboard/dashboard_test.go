package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonline/internal/platform/metrics"
	"taxonline/internal/revenue"
	"taxonline/internal/risk"
	"taxonline/internal/taxpayer"
	"taxonline/internal/timewindow"
)

var testMetrics = metrics.New()

type fixtures struct {
	taxpayers   *taxpayer.MemoryStore
	returns     *revenue.MemoryReturns
	payments    *revenue.MemoryPayments
	assessments *revenue.MemoryAssessments
	notices     *revenue.MemoryNotices
	audits      *risk.MemoryStore
}

func newTestService(t *testing.T) (*Service, fixtures) {
	t.Helper()
	f := fixtures{
		taxpayers:   taxpayer.NewMemory(),
		returns:     revenue.NewMemoryReturns(),
		payments:    revenue.NewMemoryPayments(),
		assessments: revenue.NewMemoryAssessments(),
		notices:     revenue.NewMemoryNotices(),
		audits:      risk.NewMemory(),
	}
	svc := NewService(f.taxpayers, f.returns, f.payments, f.assessments, f.notices, f.audits, testMetrics)
	return svc, f
}

func TestTaxpayerSummary(t *testing.T) {
	svc, f := newTestService(t)
	f.payments.Add(revenue.Payment{TPIN: "1001", Amount: 2500, Status: revenue.PaymentCompleted, PaidAt: time.Now()})
	f.payments.Add(revenue.Payment{TPIN: "1001", Amount: 500, Status: revenue.PaymentCompleted, PaidAt: time.Now()})
	f.returns.Add(revenue.TaxReturn{TPIN: "1001", Status: revenue.ReturnPending, DueDate: time.Now()})
	f.returns.Add(revenue.TaxReturn{TPIN: "1001", Status: revenue.ReturnFiled, DueDate: time.Now()})
	f.notices.Add(revenue.Notice{TPIN: "1001", Type: "Reminder", CreatedAt: time.Now()})
	// Another taxpayer's data must not bleed in.
	f.payments.Add(revenue.Payment{TPIN: "2002", Amount: 9999, Status: revenue.PaymentCompleted, PaidAt: time.Now()})

	sum, err := svc.TaxpayerSummary(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, sum.TotalPaid)
	assert.Equal(t, 1, sum.OutstandingReturns)
	assert.Len(t, sum.Notices, 1)
}

func TestTaxpayerSummaryEmptyState(t *testing.T) {
	svc, _ := newTestService(t)
	sum, err := svc.TaxpayerSummary(context.Background(), "1001")
	require.NoError(t, err)
	assert.Zero(t, sum.TotalPaid)
	assert.Zero(t, sum.OutstandingReturns)
	assert.Empty(t, sum.Notices)
}

func TestFilingComplianceRate(t *testing.T) {
	svc, f := newTestService(t)
	for i := 0; i < 10; i++ {
		status := revenue.ReturnFiled
		if i >= 7 {
			status = revenue.ReturnPending
		}
		f.returns.Add(revenue.TaxReturn{TPIN: "1001", TaxYear: 2016 + i, Status: status, DueDate: time.Now()})
	}

	c, err := svc.FilingCompliance(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, 7, c.Filed)
	assert.Equal(t, 10, c.Total)
	assert.Equal(t, 70.0, c.Rate())
}

func TestFilingComplianceZeroReturns(t *testing.T) {
	assert.Zero(t, FilingCompliance{}.Rate())
	assert.Equal(t, 33.3, FilingCompliance{Filed: 1, Total: 3}.Rate())
}

func TestBusinessSummary(t *testing.T) {
	svc, f := newTestService(t)
	f.returns.Add(revenue.TaxReturn{TPIN: "2002", Status: revenue.ReturnPending, DueDate: time.Now()})
	f.assessments.Add(revenue.Assessment{TPIN: "2002", Amount: 4000, Status: revenue.AssessmentUnpaid})
	f.assessments.Add(revenue.Assessment{TPIN: "2002", Amount: 1500, Status: revenue.AssessmentPaid})
	f.payments.Add(revenue.Payment{TPIN: "2002", Status: revenue.PaymentOverdue, PaidAt: time.Now()})
	f.notices.Add(revenue.Notice{TPIN: "2002", Type: "Final Demand", CreatedAt: time.Now()})

	sum, err := svc.BusinessSummary(context.Background(), "2002")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.PendingReturns)
	assert.Equal(t, 4000.0, sum.OutstandingBalance)
	assert.Equal(t, 1, sum.OverduePayments)
	assert.Len(t, sum.RecentReturns, 1)
	assert.Len(t, sum.RecentNotices, 1)
}

func TestAdminOverview(t *testing.T) {
	svc, f := newTestService(t)
	seedTaxpayer(t, f.taxpayers, "1001", "a@example.com")
	seedTaxpayer(t, f.taxpayers, "1002", "b@example.com")
	f.taxpayers.SetStatus("1002", taxpayer.StatusDormant)
	f.returns.Add(revenue.TaxReturn{TPIN: "1001", Status: revenue.ReturnFiled, DueDate: time.Now()})
	f.payments.Add(revenue.Payment{TPIN: "1001", Amount: 1200, Status: revenue.PaymentCompleted, PaidAt: time.Now()})
	f.audits.Add(risk.AuditCase{TPIN: "1001", Status: risk.StatusOpen, StartDate: time.Now()})

	o, err := svc.AdminOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, o.Taxpayers.Total)
	assert.Equal(t, 1, o.ReturnsFiled)
	assert.Equal(t, 1200.0, o.TotalCollected)
	assert.Equal(t, 1, o.OpenAudits)
	assert.Equal(t, 50.0, o.ComplianceRate())
}

func TestAnalytics(t *testing.T) {
	svc, f := newTestService(t)
	seedTaxpayer(t, f.taxpayers, "1001", "a@example.com")
	f.payments.Add(revenue.Payment{TPIN: "1001", Amount: 800, Status: revenue.PaymentCompleted,
		PaidAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)})

	window := timewindow.Window{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	a, err := svc.Analytics(context.Background(), window)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Taxpayers.Total)
	require.Len(t, a.MonthlyRevenue, 1)
	assert.Equal(t, 800.0, a.MonthlyRevenue[0].Total)
}

func seedTaxpayer(t *testing.T, store *taxpayer.MemoryStore, tpin, email string) {
	t.Helper()
	_, err := store.CreateIndividual(context.Background(), taxpayer.Individual{
		TPIN: tpin, FirstName: "Test", LastName: "Person", Email: email, TPINHash: "x",
	})
	require.NoError(t, err)
}
