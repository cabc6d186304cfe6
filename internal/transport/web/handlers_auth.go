package web

import (
	"net/http"

	"taxonline/pkg/domain"
	dErrors "taxonline/pkg/domain-errors"
)

var dashboardPaths = map[domain.PrincipalKind]string{
	domain.KindTaxpayer: "/portal/dashboard",
	domain.KindBusiness: "/business/dashboard",
	domain.KindAdmin:    "/admin/dashboard",
}

func (h *Handler) showTaxpayerLogin(w http.ResponseWriter, r *http.Request) {
	view := View{Title: "Taxpayer Login", Surface: "public"}
	if r.URL.Query().Get("registered") == "1" {
		view.Notice = "Registration complete. Please log in."
	}
	h.renderer.Render(w, r, http.StatusOK, "login", view)
}

func (h *Handler) handleTaxpayerLogin(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, "email", "tpin")
	p, err := h.logins.LoginTaxpayer(r.Context(), form["email"], form["tpin"], device(r))
	if err != nil {
		h.renderer.Render(w, r, loginStatus(err), "login", View{
			Title: "Taxpayer Login", Surface: "public",
			Error: dErrors.UserMessage(err, "Login failed. Please try again."),
			Form:  map[string]string{"email": form["email"]},
		})
		return
	}
	h.finishLogin(w, r, p)
}

func (h *Handler) showBusinessLogin(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "business_login", View{Title: "Business Login", Surface: "public"})
}

func (h *Handler) handleBusinessLogin(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, "email", "tpin")
	p, err := h.logins.LoginBusiness(r.Context(), form["email"], form["tpin"], device(r))
	if err != nil {
		h.renderer.Render(w, r, loginStatus(err), "business_login", View{
			Title: "Business Login", Surface: "public",
			Error: dErrors.UserMessage(err, "Login failed. Please try again."),
			Form:  map[string]string{"email": form["email"]},
		})
		return
	}
	h.finishLogin(w, r, p)
}

func (h *Handler) showAdminLogin(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "admin_login", View{Title: "Tax Authority Login", Surface: "public"})
}

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, "email", "password")
	p, err := h.logins.LoginAdmin(r.Context(), form["email"], form["password"], device(r))
	if err != nil {
		h.renderer.Render(w, r, loginStatus(err), "admin_login", View{
			Title: "Tax Authority Login", Surface: "public",
			Error: dErrors.UserMessage(err, "Login failed. Please try again."),
			Form:  map[string]string{"email": form["email"]},
		})
		return
	}
	h.finishLogin(w, r, p)
}

// finishLogin rotates the session and sends the principal to their dashboard.
func (h *Handler) finishLogin(w http.ResponseWriter, r *http.Request, p domain.Principal) {
	if _, err := h.sessions.Issue(r.Context(), w, r, p); err != nil {
		h.logger.ErrorContext(r.Context(), "session issue failed", "error", err)
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dashboardPaths[p.Kind], http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if session, err := h.sessions.Read(r.Context(), r); err == nil {
		h.logins.RecordLogout(r.Context(), session.Principal, device(r))
	}
	h.sessions.Clear(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func loginStatus(err error) int {
	switch {
	case dErrors.HasCode(err, dErrors.CodeInvalidInput):
		return http.StatusBadRequest
	case dErrors.HasCode(err, dErrors.CodeRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusUnauthorized
	}
}
