// Package web is the HTTP layer: server-rendered pages, the session
// endpoints and the small JSON API. Handlers delegate to domain services and
// keep no business logic of their own.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"taxonline/internal/admin"
	"taxonline/internal/apitoken"
	"taxonline/internal/auth"
	"taxonline/internal/dashboard"
	"taxonline/internal/platform/metrics"
	"taxonline/internal/revenue"
	"taxonline/internal/taxpayer"
	"taxonline/pkg/domain"
	"taxonline/pkg/requestcontext"
)

// DBHealth reports database liveness.
type DBHealth interface {
	Ping(ctx context.Context) error
}

// SessionHealth reports session store liveness. A nil SessionHealth means
// sessions are in-process and always healthy.
type SessionHealth interface {
	Health(ctx context.Context) error
}

// Handler carries every dependency the routes need.
type Handler struct {
	renderer   *Renderer
	sessions   *auth.Manager
	logins     *auth.Service
	taxpayers  *taxpayer.Service
	admins     *admin.Service
	dashboards *dashboard.Service
	returns    revenue.ReturnStore
	payments   revenue.PaymentStore
	notices    revenue.NoticeStore
	register   taxpayer.Store
	tokens     *apitoken.Service
	db         DBHealth
	sessionDB  SessionHealth
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// HandlerDeps bundles the Handler construction arguments.
type HandlerDeps struct {
	Renderer   *Renderer
	Sessions   *auth.Manager
	Logins     *auth.Service
	Taxpayers  *taxpayer.Service
	Admins     *admin.Service
	Dashboards *dashboard.Service
	Returns    revenue.ReturnStore
	Payments   revenue.PaymentStore
	Notices    revenue.NoticeStore
	Register   taxpayer.Store
	Tokens     *apitoken.Service
	DB         DBHealth
	SessionDB  SessionHealth
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		renderer:   deps.Renderer,
		sessions:   deps.Sessions,
		logins:     deps.Logins,
		taxpayers:  deps.Taxpayers,
		admins:     deps.Admins,
		dashboards: deps.Dashboards,
		returns:    deps.Returns,
		payments:   deps.Payments,
		notices:    deps.Notices,
		register:   deps.Register,
		tokens:     deps.Tokens,
		db:         deps.DB,
		sessionDB:  deps.SessionDB,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// principal pulls the guard-injected principal off the request context.
func principal(r *http.Request) domain.Principal {
	return requestcontext.Principal(r.Context())
}

// device describes the requesting client for the audit trail.
func device(r *http.Request) string {
	return auth.DescribeDevice(r.UserAgent())
}

func formValues(r *http.Request, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = strings.TrimSpace(r.FormValue(name))
	}
	return out
}
