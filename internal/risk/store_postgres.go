package risk

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore queries the audit_cases table joined to taxpayer names.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListFiltered applies the window and the optional filters in SQL. Empty
// filter values are passed as NULL so the clause collapses to true.
func (s *PostgresStore) ListFiltered(ctx context.Context, f Filter) ([]AuditCase, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.audit_id,
		       a.tpin,
		       COALESCE(i.first_name || ' ' || i.last_name, b.business_name, 'Unknown'),
		       a.risk_level,
		       a.risk_score,
		       a.province,
		       a.sector,
		       a.status,
		       a.start_date
		FROM audit_cases a
		LEFT JOIN individuals i ON i.tpin = a.tpin
		LEFT JOIN businesses b ON b.tpin = a.tpin
		WHERE a.start_date >= $1 AND a.start_date < $2
		  AND ($3::text IS NULL OR a.risk_level = $3)
		  AND ($4::text IS NULL OR a.sector = $4)
		  AND ($5::text IS NULL OR a.status = $5)
		ORDER BY a.risk_score DESC, a.start_date DESC
		LIMIT $6
	`, f.Window.Start, f.Window.End, nullable(f.RiskLevel), nullable(f.Sector), nullable(f.Status), f.limit())
	if err != nil {
		return nil, fmt.Errorf("list audit cases: %w", err)
	}
	defer rows.Close()

	var cases []AuditCase
	for rows.Next() {
		var c AuditCase
		if err := rows.Scan(&c.ID, &c.TPIN, &c.TaxpayerName, &c.RiskLevel, &c.RiskScore,
			&c.Province, &c.Sector, &c.Status, &c.StartDate); err != nil {
			return nil, fmt.Errorf("scan audit case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func (s *PostgresStore) CountOpen(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_cases WHERE status = 'Open'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open audit cases: %w", err)
	}
	return count, nil
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
