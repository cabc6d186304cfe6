package revenue

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxonline/internal/timewindow"
)

var (
	_ ReturnStore     = (*PostgresReturns)(nil)
	_ PaymentStore    = (*PostgresPayments)(nil)
	_ AssessmentStore = (*PostgresAssessments)(nil)
	_ NoticeStore     = (*PostgresNotices)(nil)
)

// PostgresReturns queries the tax_returns table. Every taxpayer-facing query
// is scoped by TPIN in the WHERE clause.
type PostgresReturns struct {
	pool *pgxpool.Pool
}

func NewPostgresReturns(pool *pgxpool.Pool) *PostgresReturns {
	return &PostgresReturns{pool: pool}
}

func (s *PostgresReturns) ListByTPIN(ctx context.Context, tpin string) ([]TaxReturn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT return_id, tpin, tax_year, tax_type, status, filing_date, due_date
		FROM tax_returns
		WHERE tpin = $1
		ORDER BY tax_year DESC, due_date DESC
	`, tpin)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	return scanReturns(rows)
}

func (s *PostgresReturns) RecentByTPIN(ctx context.Context, tpin string, limit int) ([]TaxReturn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT return_id, tpin, tax_year, tax_type, status, filing_date, due_date
		FROM tax_returns
		WHERE tpin = $1
		ORDER BY due_date DESC
		LIMIT $2
	`, tpin, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent returns: %w", err)
	}
	defer rows.Close()
	return scanReturns(rows)
}

func (s *PostgresReturns) CountByTPIN(ctx context.Context, tpin string, statuses ...string) (int, error) {
	var count int
	var err error
	if len(statuses) == 0 {
		err = s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tax_returns WHERE tpin = $1`, tpin).Scan(&count)
	} else {
		err = s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tax_returns WHERE tpin = $1 AND status = ANY($2)`, tpin, statuses).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count returns: %w", err)
	}
	return count, nil
}

func (s *PostgresReturns) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tax_returns WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count returns by status: %w", err)
	}
	return count, nil
}

func scanReturns(rows pgx.Rows) ([]TaxReturn, error) {
	var returns []TaxReturn
	for rows.Next() {
		var r TaxReturn
		if err := rows.Scan(&r.ID, &r.TPIN, &r.TaxYear, &r.TaxType, &r.Status, &r.FilingDate, &r.DueDate); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		returns = append(returns, r)
	}
	return returns, rows.Err()
}

// PostgresPayments queries the payments table.
type PostgresPayments struct {
	pool *pgxpool.Pool
}

func NewPostgresPayments(pool *pgxpool.Pool) *PostgresPayments {
	return &PostgresPayments{pool: pool}
}

func (s *PostgresPayments) ListByTPIN(ctx context.Context, tpin string) ([]Payment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT payment_id, tpin, amount_paid, payment_date, payment_method, status
		FROM payments
		WHERE tpin = $1
		ORDER BY payment_date DESC
	`, tpin)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.TPIN, &p.Amount, &p.PaidAt, &p.Method, &p.Status); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *PostgresPayments) TotalPaidByTPIN(ctx context.Context, tpin string) (float64, error) {
	var total float64
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_paid), 0)
		FROM payments
		WHERE tpin = $1 AND status = 'Completed'
	`, tpin).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total paid: %w", err)
	}
	return total, nil
}

func (s *PostgresPayments) OverdueCountByTPIN(ctx context.Context, tpin string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM payments WHERE tpin = $1 AND status = 'Overdue'
	`, tpin).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count overdue payments: %w", err)
	}
	return count, nil
}

func (s *PostgresPayments) TotalCollected(ctx context.Context) (float64, error) {
	var total float64
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE status = 'Completed'
	`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total collected: %w", err)
	}
	return total, nil
}

func (s *PostgresPayments) MonthlyTotals(ctx context.Context, window timewindow.Window) ([]MonthlyRevenue, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT date_trunc('month', payment_date) AS month, SUM(amount_paid)
		FROM payments
		WHERE status = 'Completed' AND payment_date >= $1 AND payment_date < $2
		GROUP BY month
		ORDER BY month
	`, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue totals: %w", err)
	}
	defer rows.Close()

	var totals []MonthlyRevenue
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		totals = append(totals, m)
	}
	return totals, rows.Err()
}

// PostgresAssessments queries the assessments table.
type PostgresAssessments struct {
	pool *pgxpool.Pool
}

func NewPostgresAssessments(pool *pgxpool.Pool) *PostgresAssessments {
	return &PostgresAssessments{pool: pool}
}

func (s *PostgresAssessments) UnpaidTotalByTPIN(ctx context.Context, tpin string) (float64, error) {
	var total float64
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM assessments
		WHERE tpin = $1 AND status = 'Unpaid'
	`, tpin).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("unpaid assessment total: %w", err)
	}
	return total, nil
}

// PostgresNotices queries the notices table.
type PostgresNotices struct {
	pool *pgxpool.Pool
}

func NewPostgresNotices(pool *pgxpool.Pool) *PostgresNotices {
	return &PostgresNotices{pool: pool}
}

func (s *PostgresNotices) RecentByTPIN(ctx context.Context, tpin string, limit int) ([]Notice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT notice_id, tpin, notice_type, message, created_at
		FROM notices
		WHERE tpin = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, tpin, limit)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()
	return scanNotices(rows)
}

func (s *PostgresNotices) ListRecent(ctx context.Context, limit int) ([]Notice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT notice_id, tpin, notice_type, message, created_at
		FROM notices
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent notices: %w", err)
	}
	defer rows.Close()
	return scanNotices(rows)
}

func scanNotices(rows pgx.Rows) ([]Notice, error) {
	var notices []Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.TPIN, &n.Type, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}
