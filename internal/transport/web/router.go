package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxonline/internal/platform/middleware"
	"taxonline/pkg/domain"
)

// NewRouter wires every surface onto one chi router: public auth pages, the
// three guarded portals, the JSON API and the operational endpoints.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Recovery(h.logger))

	// Public pages.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	})
	r.Get("/login", h.showTaxpayerLogin)
	r.Post("/login", h.handleTaxpayerLogin)
	r.Get("/business/login", h.showBusinessLogin)
	r.Post("/business/login", h.handleBusinessLogin)
	r.Get("/admin/login", h.showAdminLogin)
	r.Post("/admin/login", h.handleAdminLogin)
	r.Get("/register", h.showRegister)
	r.Post("/register", h.handleRegister)
	r.Get("/admin/register", h.showAdminRegister)
	r.Post("/admin/register", h.handleAdminRegister)
	r.Get("/logout", h.handleLogout)

	// Taxpayer portal.
	r.Route("/portal", func(r chi.Router) {
		r.Use(h.sessions.Require(domain.KindTaxpayer))
		r.Get("/dashboard", h.portalDashboard)
		r.Get("/filings", h.portalFilings)
		r.Get("/payments", h.portalPayments)
		r.Get("/compliance", h.portalCompliance)
		r.Get("/profile", h.portalProfile)
	})

	// Business portal. The login page lives at the top level, so the guard
	// attaches per route rather than on a /business subtree.
	r.With(h.sessions.Require(domain.KindBusiness)).Get("/business/dashboard", h.businessDashboard)

	// Admin dashboards.
	requireAdmin := h.sessions.Require(domain.KindAdmin)
	r.With(requireAdmin).Get("/admin/dashboard", h.adminDashboard)
	r.With(requireAdmin).Get("/admin/analytics", h.adminAnalytics)
	r.With(requireAdmin).Get("/admin/risk", h.adminRisk)
	r.With(requireAdmin).Get("/admin/taxpayers", h.adminTaxpayers)
	r.With(requireAdmin).Get("/admin/alerts", h.adminAlerts)
	r.With(requireAdmin).Get("/admin/reports", h.adminReports)

	// JSON API.
	r.Post("/api/token", h.handleAPIToken)
	r.Get("/api/v1/overview", h.handleAPIOverview)

	// Operational endpoints and client assets.
	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", StaticHandler())

	return r
}
