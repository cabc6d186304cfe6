package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxonline/pkg/domain"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore writes the audit trail to the audit_log table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_log (id, actor_kind, actor_id, action, detail, device, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, string(entry.ActorKind), entry.ActorID, entry.Action, entry.Detail, entry.Device, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecentByActor(ctx context.Context, kind domain.PrincipalKind, actorID int64, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, actor_kind, actor_id, action, detail, device, created_at
		FROM audit_log
		WHERE actor_kind = $1 AND actor_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, string(kind), actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var actorKind string
		if err := rows.Scan(&e.ID, &actorKind, &e.ActorID, &e.Action, &e.Detail, &e.Device, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.ActorKind = domain.PrincipalKind(actorKind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
