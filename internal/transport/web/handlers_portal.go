package web

import (
	"net/http"

	"taxonline/internal/dashboard"
)

// Taxpayer portal pages. A failed query set logs and renders the empty
// state; the page always comes back.

func (h *Handler) portalDashboard(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	summary, err := h.dashboards.TaxpayerSummary(r.Context(), p.TPIN)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "taxpayer summary failed", "tpin", p.TPIN, "error", err)
		summary = dashboard.TaxpayerSummary{}
	}
	h.renderer.Render(w, r, http.StatusOK, "portal_dashboard", View{
		Title: "Dashboard", Surface: "portal", Principal: p, Data: summary,
	})
}

func (h *Handler) portalFilings(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	returns, err := h.returns.ListByTPIN(r.Context(), p.TPIN)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list filings failed", "tpin", p.TPIN, "error", err)
		returns = nil
	}
	h.renderer.Render(w, r, http.StatusOK, "portal_filings", View{
		Title: "My Filings", Surface: "portal", Principal: p, Data: returns,
	})
}

func (h *Handler) portalPayments(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	payments, err := h.payments.ListByTPIN(r.Context(), p.TPIN)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list payments failed", "tpin", p.TPIN, "error", err)
		payments = nil
	}
	h.renderer.Render(w, r, http.StatusOK, "portal_payments", View{
		Title: "Payments", Surface: "portal", Principal: p, Data: payments,
	})
}

func (h *Handler) portalCompliance(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	compliance, err := h.dashboards.FilingCompliance(r.Context(), p.TPIN)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "filing compliance failed", "tpin", p.TPIN, "error", err)
		compliance = dashboard.FilingCompliance{}
	}
	h.renderer.Render(w, r, http.StatusOK, "portal_compliance", View{
		Title: "Compliance", Surface: "portal", Principal: p, Data: compliance,
	})
}

func (h *Handler) portalProfile(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "portal_profile", View{
		Title: "My Profile", Surface: "portal", Principal: principal(r),
	})
}

func (h *Handler) businessDashboard(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	summary, err := h.dashboards.BusinessSummary(r.Context(), p.TPIN)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "business summary failed", "tpin", p.TPIN, "error", err)
		summary = dashboard.BusinessSummary{}
	}
	h.renderer.Render(w, r, http.StatusOK, "business_dashboard", View{
		Title: "Business Dashboard", Surface: "business", Principal: p, Data: summary,
	})
}
