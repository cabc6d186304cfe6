package web

import (
	"encoding/json"
	"net/http"
	"time"

	"taxonline/internal/dashboard"
	dErrors "taxonline/pkg/domain-errors"
)

// handleAPIToken exchanges officer credentials for a bearer token.
func (h *Handler) handleAPIToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	p, err := h.logins.LoginAdmin(r.Context(), req.Email, req.Password, "API Client")
	if err != nil {
		writeJSONError(w, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(p.ID, p.Email)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "token issue failed", "error", err)
		writeJSONError(w, dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expiresAt.UTC().Format(time.RFC3339),
	})
}

// handleAPIOverview is the JWT-guarded JSON snapshot of the admin overview.
func (h *Handler) handleAPIOverview(w http.ResponseWriter, r *http.Request) {
	if _, err := h.tokens.FromAuthHeader(r.Header.Get("Authorization")); err != nil {
		writeJSONError(w, err)
		return
	}

	overview, err := h.dashboards.AdminOverview(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "api overview failed", "error", err)
		writeJSONError(w, dErrors.Wrap(err, dErrors.CodeInternal, "overview unavailable"))
		return
	}

	writeJSON(w, http.StatusOK, overviewPayload(overview))
}

func overviewPayload(o dashboard.AdminOverview) map[string]any {
	return map[string]any{
		"taxpayers": map[string]int{
			"total":     o.Taxpayers.Total,
			"active":    o.Taxpayers.Active,
			"dormant":   o.Taxpayers.Dormant,
			"suspended": o.Taxpayers.Suspended,
		},
		"returns_filed":   o.ReturnsFiled,
		"total_collected": o.TotalCollected,
		"open_audits":     o.OpenAudits,
		"compliance_rate": o.ComplianceRate(),
	}
}

// handleHealth pings the backing stores and reports per-component status.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{"database": "ok", "sessions": "ok"}

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "database health check failed", "error", err)
		body["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if h.sessionDB != nil {
		if err := h.sessionDB.Health(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "session store health check failed", "error", err)
			body["sessions"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case dErrors.HasCode(err, dErrors.CodeInvalidInput):
		status = http.StatusBadRequest
	case dErrors.HasCode(err, dErrors.CodeUnauthorized):
		status = http.StatusUnauthorized
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		status = http.StatusNotFound
	case dErrors.HasCode(err, dErrors.CodeConflict):
		status = http.StatusConflict
	case dErrors.HasCode(err, dErrors.CodeRateLimited):
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, map[string]string{
		"error": dErrors.UserMessage(err, "internal error"),
	})
}
