// Package audit keeps the append-only trail of authentication and
// registration events. Entries are written synchronously in the request that
// produced them; there is no queue or background worker.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taxonline/pkg/domain"
)

// Actions recorded on the trail.
const (
	ActionLoginSucceeded = "login.succeeded"
	ActionLoginFailed    = "login.failed"
	ActionLogout         = "logout"
	ActionRegistered     = "registered"
)

// Entry is one audit trail row. ActorID is zero for failed logins where no
// principal was resolved; Detail then carries the attempted identifier.
type Entry struct {
	ID        uuid.UUID
	ActorKind domain.PrincipalKind
	ActorID   int64
	Action    string
	Detail    string
	Device    string
	CreatedAt time.Time
}

// Store persists audit entries.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	RecentByActor(ctx context.Context, kind domain.PrincipalKind, actorID int64, limit int) ([]Entry, error)
}

// NewEntry stamps an entry with an ID and timestamp.
func NewEntry(kind domain.PrincipalKind, actorID int64, action, detail, device string) Entry {
	return Entry{
		ID:        uuid.New(),
		ActorKind: kind,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
		Device:    device,
		CreatedAt: time.Now(),
	}
}
