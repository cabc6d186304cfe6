package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taxonline/pkg/domain"
	dErrors "taxonline/pkg/domain-errors"
)

const msgTooManyAttempts = "Too many failed attempts. Please try again later."

// LockoutPolicy bounds failed logins per account: once MaxFailures land
// inside Window, further attempts for that account are refused until the
// window expires.
type LockoutPolicy struct {
	MaxFailures int
	Window      time.Duration
}

func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{MaxFailures: 5, Window: 15 * time.Minute}
}

// LockoutStore counts login failures per key inside a rolling window.
type LockoutStore interface {
	// RecordFailure increments the failure count for key and returns the new
	// count. The first failure starts a window of the given duration.
	RecordFailure(ctx context.Context, key string, window time.Duration) (int, error)
	// Failures returns the current count, or zero once the window has passed.
	Failures(ctx context.Context, key string) (int, error)
	Clear(ctx context.Context, key string) error
}

// Lockout throttles login attempts per principal kind and email. Store
// errors fail open: a broken counter must not lock every account out, so
// they are logged and the attempt proceeds.
type Lockout struct {
	store  LockoutStore
	policy LockoutPolicy
	logger *slog.Logger
}

func NewLockout(store LockoutStore, policy LockoutPolicy, logger *slog.Logger) *Lockout {
	return &Lockout{store: store, policy: policy, logger: logger}
}

// Check refuses the attempt when the account has exhausted its window.
func (l *Lockout) Check(ctx context.Context, kind domain.PrincipalKind, email string) error {
	count, err := l.store.Failures(ctx, lockoutKey(kind, email))
	if err != nil {
		l.logger.ErrorContext(ctx, "lockout lookup failed", "kind", string(kind), "error", err)
		return nil
	}
	if count >= l.policy.MaxFailures {
		return dErrors.New(dErrors.CodeRateLimited, msgTooManyAttempts)
	}
	return nil
}

// RecordFailure counts a failed attempt against the account.
func (l *Lockout) RecordFailure(ctx context.Context, kind domain.PrincipalKind, email string) {
	if _, err := l.store.RecordFailure(ctx, lockoutKey(kind, email), l.policy.Window); err != nil {
		l.logger.ErrorContext(ctx, "lockout record failed", "kind", string(kind), "error", err)
	}
}

// Clear resets the counter after a successful login.
func (l *Lockout) Clear(ctx context.Context, kind domain.PrincipalKind, email string) {
	if err := l.store.Clear(ctx, lockoutKey(kind, email)); err != nil {
		l.logger.ErrorContext(ctx, "lockout clear failed", "kind", string(kind), "error", err)
	}
}

func lockoutKey(kind domain.PrincipalKind, email string) string {
	return string(kind) + ":" + strings.ToLower(email)
}
