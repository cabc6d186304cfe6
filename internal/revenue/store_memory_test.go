package revenue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxonline/internal/timewindow"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReturnsAreScopedByTPIN(t *testing.T) {
	store := NewMemoryReturns()
	store.Add(TaxReturn{TPIN: "1001", TaxYear: 2025, TaxType: "Income Tax", Status: ReturnFiled, DueDate: day(2026, 6, 30)})
	store.Add(TaxReturn{TPIN: "1001", TaxYear: 2024, TaxType: "Income Tax", Status: ReturnPending, DueDate: day(2025, 6, 30)})
	store.Add(TaxReturn{TPIN: "2002", TaxYear: 2025, TaxType: "VAT", Status: ReturnPending, DueDate: day(2026, 3, 31)})

	list, err := store.ListByTPIN(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, r := range list {
		assert.Equal(t, "1001", r.TPIN, "no foreign rows leak into a taxpayer listing")
	}
	assert.Equal(t, 2025, list[0].TaxYear, "newest tax year first")

	pending, err := store.CountByTPIN(context.Background(), "1001", ReturnPending)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	all, err := store.CountByTPIN(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, 2, all)

	filed, err := store.CountByStatus(context.Background(), ReturnFiled)
	require.NoError(t, err)
	assert.Equal(t, 1, filed)
}

func TestRecentReturnsHonorsLimit(t *testing.T) {
	store := NewMemoryReturns()
	for i := 0; i < 5; i++ {
		store.Add(TaxReturn{TPIN: "1001", TaxYear: 2021 + i, Status: ReturnFiled, DueDate: day(2022+i, 6, 30)})
	}
	recent, err := store.RecentByTPIN(context.Background(), "1001", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 2025, recent[0].TaxYear)
}

func TestPaymentTotals(t *testing.T) {
	store := NewMemoryPayments()
	store.Add(Payment{TPIN: "1001", Amount: 1500, Status: PaymentCompleted, PaidAt: day(2026, 1, 10)})
	store.Add(Payment{TPIN: "1001", Amount: 500, Status: PaymentCompleted, PaidAt: day(2026, 2, 5)})
	store.Add(Payment{TPIN: "1001", Amount: 999, Status: PaymentOverdue, PaidAt: day(2026, 2, 20)})
	store.Add(Payment{TPIN: "2002", Amount: 10000, Status: PaymentCompleted, PaidAt: day(2026, 1, 15)})

	total, err := store.TotalPaidByTPIN(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, total, "overdue payments do not count as paid")

	overdue, err := store.OverdueCountByTPIN(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, 1, overdue)

	collected, err := store.TotalCollected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12000.0, collected)
}

func TestMonthlyTotalsGroupWithinWindow(t *testing.T) {
	store := NewMemoryPayments()
	store.Add(Payment{TPIN: "1001", Amount: 100, Status: PaymentCompleted, PaidAt: day(2026, 1, 5)})
	store.Add(Payment{TPIN: "2002", Amount: 200, Status: PaymentCompleted, PaidAt: day(2026, 1, 25)})
	store.Add(Payment{TPIN: "1001", Amount: 300, Status: PaymentCompleted, PaidAt: day(2026, 2, 14)})
	store.Add(Payment{TPIN: "1001", Amount: 400, Status: PaymentCompleted, PaidAt: day(2025, 12, 31)})

	window := timewindow.Window{Start: day(2026, 1, 1), End: day(2026, 3, 1)}
	totals, err := store.MonthlyTotals(context.Background(), window)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, day(2026, 1, 1), totals[0].Month)
	assert.Equal(t, 300.0, totals[0].Total)
	assert.Equal(t, 300.0, totals[1].Total)
}

func TestUnpaidAssessmentTotal(t *testing.T) {
	store := NewMemoryAssessments()
	store.Add(Assessment{TPIN: "2002", Amount: 4000, Status: AssessmentUnpaid})
	store.Add(Assessment{TPIN: "2002", Amount: 1000, Status: AssessmentPaid})
	store.Add(Assessment{TPIN: "9999", Amount: 777, Status: AssessmentUnpaid})

	total, err := store.UnpaidTotalByTPIN(context.Background(), "2002")
	require.NoError(t, err)
	assert.Equal(t, 4000.0, total)

	none, err := store.UnpaidTotalByTPIN(context.Background(), "0000")
	require.NoError(t, err)
	assert.Zero(t, none, "no rows yields zero, not an error")
}

func TestNoticeListings(t *testing.T) {
	store := NewMemoryNotices()
	store.Add(Notice{TPIN: "1001", Type: "Reminder", Message: "File your 2025 return", CreatedAt: day(2026, 1, 1)})
	store.Add(Notice{TPIN: "1001", Type: "Final Demand", Message: "Balance outstanding", CreatedAt: day(2026, 2, 1)})
	store.Add(Notice{TPIN: "2002", Type: "Reminder", Message: "VAT due", CreatedAt: day(2026, 3, 1)})

	mine, err := store.RecentByTPIN(context.Background(), "1001", 10)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Final Demand", mine[0].Type, "newest first")

	all, err := store.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2002", all[0].TPIN)
}
