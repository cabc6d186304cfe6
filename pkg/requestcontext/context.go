// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them; handlers and services read
// them without importing net/http.
package requestcontext

import (
	"context"

	"taxonline/pkg/domain"
)

type (
	principalKey struct{}
	requestIDKey struct{}
	sessionIDKey struct{}
)

// Principal retrieves the authenticated principal from the context.
// Returns the zero value when the request is unauthenticated.
func Principal(ctx context.Context) domain.Principal {
	if p, ok := ctx.Value(principalKey{}).(domain.Principal); ok {
		return p
	}
	return domain.Principal{}
}

// WithPrincipal injects the authenticated principal into the context.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// RequestID retrieves the request ID set by the middleware chain.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// SessionID retrieves the server-side session ID for the request.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithSessionID injects a session ID into the context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}
