// Package auth owns server-side sessions and the three login flows
// (taxpayer, business, admin). Sessions are opaque IDs stored server-side;
// the cookie carries nothing but the ID.
package auth

import (
	"context"
	"time"

	"taxonline/pkg/domain"
)

// Session is the server-side session record keyed by an opaque ID. Display
// fields are cached so dashboard chrome renders without a profile query.
type Session struct {
	ID        string           `json:"id"`
	Principal domain.Principal `json:"principal"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Expired reports whether the session has passed its TTL.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionStore persists sessions. Implementations return
// sentinel.ErrNotFound for unknown or expired IDs.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
