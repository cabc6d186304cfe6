package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"taxonline/pkg/domain"
)

// Manager issues, reads and revokes sessions and owns the cookie contract.
type Manager struct {
	store      SessionStore
	cookieName string
	ttl        time.Duration
	now        func() time.Time
}

func NewManager(store SessionStore, cookieName string, ttl time.Duration) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Issue creates a fresh session for the principal and sets the cookie. Any
// session presented on the request is deleted first so a pre-login session ID
// can never survive authentication (fixation defense).
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, r *http.Request, p domain.Principal) (Session, error) {
	if old, err := r.Cookie(m.cookieName); err == nil && old.Value != "" {
		_ = m.store.Delete(ctx, old.Value)
	}

	now := m.now()
	session := Session{
		ID:        uuid.NewString(),
		Principal: p,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, session); err != nil {
		return Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
	return session, nil
}

// Read resolves the session referenced by the request cookie, if any.
func (m *Manager) Read(ctx context.Context, r *http.Request) (Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return Session{}, err
	}
	if cookie.Value == "" {
		return Session{}, http.ErrNoCookie
	}
	return m.store.Find(ctx, cookie.Value)
}

// Clear revokes the request's session and expires the cookie.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		_ = m.store.Delete(ctx, cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
