package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxonline/pkg/platform/sentinel"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore is the production officer account store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, a Admin) (Admin, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tax_admins (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, a.FullName, a.Email, a.PasswordHash).Scan(&a.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Admin{}, sentinel.ErrConflict
		}
		return Admin{}, fmt.Errorf("insert admin: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Admin, error) {
	var a Admin
	err := s.pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash
		FROM tax_admins
		WHERE email = $1
	`, email).Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Admin{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Admin{}, fmt.Errorf("find admin by email: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Admin, error) {
	var a Admin
	err := s.pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash
		FROM tax_admins
		WHERE id = $1
	`, id).Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Admin{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Admin{}, fmt.Errorf("find admin by id: %w", err)
	}
	return a, nil
}
