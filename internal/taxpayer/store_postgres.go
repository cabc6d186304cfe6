package taxpayer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxonline/pkg/platform/sentinel"
)

// Ensure PostgresStore satisfies the Store interface at compile time.
var _ Store = (*PostgresStore)(nil)

// PostgresStore is the production taxpayer register backed by pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a taxpayer store on an existing pool.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateIndividual inserts the taxpayers row and the individuals row in one
// transaction so a duplicate TPIN or email leaves nothing behind.
func (s *PostgresStore) CreateIndividual(ctx context.Context, ind Individual) (Individual, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Individual{}, fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO taxpayers (tpin, taxpayer_type, registration_date, status, primary_email)
		VALUES ($1, 'Individual', CURRENT_DATE, 'Active', $2)
	`, ind.TPIN, ind.Email)
	if err != nil {
		return Individual{}, mapPgError(err, "insert taxpayer")
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO individuals (tpin, first_name, last_name, email, tpin_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING individual_id
	`, ind.TPIN, ind.FirstName, ind.LastName, ind.Email, ind.TPINHash).Scan(&ind.ID)
	if err != nil {
		return Individual{}, mapPgError(err, "insert individual")
	}

	if err := tx.Commit(ctx); err != nil {
		return Individual{}, fmt.Errorf("commit registration tx: %w", err)
	}
	return ind, nil
}

// CreateBusiness inserts the taxpayers row and the businesses row in one
// transaction.
func (s *PostgresStore) CreateBusiness(ctx context.Context, biz Business) (Business, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Business{}, fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO taxpayers (tpin, taxpayer_type, registration_date, status, primary_email)
		VALUES ($1, 'Business', CURRENT_DATE, 'Active', $2)
	`, biz.TPIN, biz.Email)
	if err != nil {
		return Business{}, mapPgError(err, "insert taxpayer")
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO businesses (tpin, business_name, email, tpin_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING business_id
	`, biz.TPIN, biz.Name, biz.Email, biz.TPINHash).Scan(&biz.ID)
	if err != nil {
		return Business{}, mapPgError(err, "insert business")
	}

	if err := tx.Commit(ctx); err != nil {
		return Business{}, fmt.Errorf("commit registration tx: %w", err)
	}
	return biz, nil
}

func (s *PostgresStore) FindIndividualByEmail(ctx context.Context, email string) (Individual, error) {
	var ind Individual
	err := s.pool.QueryRow(ctx, `
		SELECT individual_id, tpin, first_name, last_name, email, tpin_hash
		FROM individuals
		WHERE email = $1
	`, email).Scan(&ind.ID, &ind.TPIN, &ind.FirstName, &ind.LastName, &ind.Email, &ind.TPINHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Individual{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Individual{}, fmt.Errorf("find individual by email: %w", err)
	}
	return ind, nil
}

func (s *PostgresStore) FindIndividualByID(ctx context.Context, id int64) (Individual, error) {
	var ind Individual
	err := s.pool.QueryRow(ctx, `
		SELECT individual_id, tpin, first_name, last_name, email, tpin_hash
		FROM individuals
		WHERE individual_id = $1
	`, id).Scan(&ind.ID, &ind.TPIN, &ind.FirstName, &ind.LastName, &ind.Email, &ind.TPINHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Individual{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Individual{}, fmt.Errorf("find individual by id: %w", err)
	}
	return ind, nil
}

func (s *PostgresStore) FindBusinessByEmail(ctx context.Context, email string) (Business, error) {
	var biz Business
	err := s.pool.QueryRow(ctx, `
		SELECT business_id, tpin, business_name, email, tpin_hash
		FROM businesses
		WHERE email = $1
	`, email).Scan(&biz.ID, &biz.TPIN, &biz.Name, &biz.Email, &biz.TPINHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Business{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Business{}, fmt.Errorf("find business by email: %w", err)
	}
	return biz, nil
}

func (s *PostgresStore) FindBusinessByID(ctx context.Context, id int64) (Business, error) {
	var biz Business
	err := s.pool.QueryRow(ctx, `
		SELECT business_id, tpin, business_name, email, tpin_hash
		FROM businesses
		WHERE business_id = $1
	`, id).Scan(&biz.ID, &biz.TPIN, &biz.Name, &biz.Email, &biz.TPINHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Business{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Business{}, fmt.Errorf("find business by id: %w", err)
	}
	return biz, nil
}

// CountByStatus returns the register totals for the admin overview. Zero rows
// yields zero counts, not an error.
func (s *PostgresStore) CountByStatus(ctx context.Context) (StatusCounts, error) {
	var c StatusCounts
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'Active'),
		       COUNT(*) FILTER (WHERE status = 'Dormant'),
		       COUNT(*) FILTER (WHERE status = 'Suspended')
		FROM taxpayers
	`).Scan(&c.Total, &c.Active, &c.Dormant, &c.Suspended)
	if err != nil {
		return StatusCounts{}, fmt.Errorf("count taxpayers by status: %w", err)
	}
	return c, nil
}

// ListDirectory returns the taxpayer directory joined to profile names.
func (s *PostgresStore) ListDirectory(ctx context.Context, limit int) ([]DirectoryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.tpin,
		       COALESCE(i.first_name || ' ' || i.last_name, b.business_name, 'Unknown'),
		       t.primary_email,
		       t.taxpayer_type,
		       t.registration_date,
		       t.status
		FROM taxpayers t
		LEFT JOIN individuals i ON i.tpin = t.tpin
		LEFT JOIN businesses b ON b.tpin = t.tpin
		ORDER BY t.registration_date DESC, t.tpin
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list taxpayer directory: %w", err)
	}
	defer rows.Close()

	var entries []DirectoryEntry
	for rows.Next() {
		var e DirectoryEntry
		if err := rows.Scan(&e.TPIN, &e.Name, &e.Email, &e.TaxpayerType, &e.Registered, &e.Status); err != nil {
			return nil, fmt.Errorf("scan directory row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// mapPgError converts a unique violation into the conflict sentinel so the
// registration service can surface it as a recoverable form error.
func mapPgError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return sentinel.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
