package web

import (
	"net/http"
	"time"

	"taxonline/internal/dashboard"
	"taxonline/internal/risk"
	"taxonline/internal/taxpayer"
	"taxonline/internal/timewindow"
	dErrors "taxonline/pkg/domain-errors"
)

const directoryLimit = 500
const alertsLimit = 100

// ReportTemplate is one entry of the report catalogue. Generation is out of
// scope; the page only lists what the reporting office can produce.
type ReportTemplate struct {
	Name        string
	Description string
}

var reportTemplates = []ReportTemplate{
	{Name: "Revenue Collection Summary", Description: "Collected payments by month and tax type."},
	{Name: "Filing Compliance by Province", Description: "Filed versus outstanding returns per province."},
	{Name: "Audit Case Register", Description: "All audit cases with risk scores and statuses."},
	{Name: "Dormant Taxpayer Listing", Description: "Registered taxpayers with no recent activity."},
}

func (h *Handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	overview, err := h.dashboards.AdminOverview(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "admin overview failed", "error", err)
		overview = dashboard.AdminOverview{}
	}
	h.renderer.Render(w, r, http.StatusOK, "admin_dashboard", View{
		Title: "Compliance Overview", Surface: "admin", Principal: p, Data: overview,
	})
}

func (h *Handler) adminAnalytics(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	q := r.URL.Query()

	view := View{Title: "Analytics", Surface: "admin", Principal: p}
	window, err := timewindow.Parse(time.Now(), q.Get("range"), q.Get("from"), q.Get("to"), q.Get("days"))
	if err != nil {
		view.Error = dErrors.UserMessage(err, "Invalid date range.")
		window = timewindow.ThisMonth(time.Now())
	}

	analytics, err := h.dashboards.Analytics(r.Context(), window)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "admin analytics failed", "error", err)
		analytics = dashboard.Analytics{Window: window}
	}
	view.Data = analytics
	h.renderer.Render(w, r, http.StatusOK, "admin_analytics", view)
}

func (h *Handler) adminRisk(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	q := r.URL.Query()

	// The risk page defaults to the trailing 30 days, not the calendar month.
	days := q.Get("days")
	if days == "" && q.Get("range") == "" && q.Get("from") == "" && q.Get("to") == "" {
		days = "30"
	}

	view := View{
		Title: "Risk Register", Surface: "admin", Principal: p,
		Form: map[string]string{"sector": q.Get("sector"), "status": q.Get("status"), "days": q.Get("days")},
	}
	window, err := timewindow.Parse(time.Now(), q.Get("range"), q.Get("from"), q.Get("to"), days)
	if err != nil {
		view.Error = dErrors.UserMessage(err, "Invalid date range.")
		window = timewindow.LastDays(time.Now(), 30)
	}

	cases, err := h.dashboards.RiskCases(r.Context(), risk.Filter{
		Window:    window,
		RiskLevel: q.Get("risk"),
		Sector:    q.Get("sector"),
		Status:    q.Get("status"),
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "admin risk cases failed", "error", err)
		cases = nil
	}
	view.Data = cases
	h.renderer.Render(w, r, http.StatusOK, "admin_risk", view)
}

type directoryView struct {
	Counts  taxpayer.StatusCounts
	Entries []taxpayer.DirectoryEntry
}

func (h *Handler) adminTaxpayers(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	var data directoryView
	var err error
	if data.Counts, err = h.register.CountByStatus(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "taxpayer counts failed", "error", err)
	}
	if data.Entries, err = h.register.ListDirectory(r.Context(), directoryLimit); err != nil {
		h.logger.ErrorContext(r.Context(), "taxpayer directory failed", "error", err)
	}
	h.renderer.Render(w, r, http.StatusOK, "admin_taxpayers", View{
		Title: "Taxpayer Directory", Surface: "admin", Principal: p, Data: data,
	})
}

func (h *Handler) adminAlerts(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	notices, err := h.notices.ListRecent(r.Context(), alertsLimit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list alerts failed", "error", err)
		notices = nil
	}
	h.renderer.Render(w, r, http.StatusOK, "admin_alerts", View{
		Title: "Alerts", Surface: "admin", Principal: p, Data: notices,
	})
}

func (h *Handler) adminReports(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "admin_reports", View{
		Title: "Reports", Surface: "admin", Principal: principal(r), Data: reportTemplates,
	})
}
