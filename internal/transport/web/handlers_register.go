package web

import (
	"net/http"

	"taxonline/internal/admin"
	"taxonline/internal/taxpayer"
	"taxonline/pkg/domain"
	dErrors "taxonline/pkg/domain-errors"
)

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "register", View{Title: "Register", Surface: "public"})
}

// handleRegister serves both registration forms; the hidden kind field picks
// the path.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, "kind", "first_name", "last_name", "business_name", "email", "tpin", "tpin_confirm")

	var err error
	var kind string
	switch form["kind"] {
	case "business":
		kind = string(domain.KindBusiness)
		_, err = h.taxpayers.RegisterBusiness(r.Context(), taxpayer.RegisterBusinessRequest{
			BusinessName: form["business_name"],
			Email:        form["email"],
			TPIN:         form["tpin"],
			TPINConfirm:  form["tpin_confirm"],
			Device:       device(r),
		})
	default:
		kind = string(domain.KindTaxpayer)
		_, err = h.taxpayers.RegisterIndividual(r.Context(), taxpayer.RegisterIndividualRequest{
			FirstName:   form["first_name"],
			LastName:    form["last_name"],
			Email:       form["email"],
			TPIN:        form["tpin"],
			TPINConfirm: form["tpin_confirm"],
			Device:      device(r),
		})
	}
	if err != nil {
		h.renderer.Render(w, r, registerStatus(err), "register", View{
			Title: "Register", Surface: "public",
			Error: dErrors.UserMessage(err, "Registration failed. Please try again."),
			Form:  form,
		})
		return
	}

	h.metrics.Registrations.WithLabelValues(kind).Inc()
	target := "/login?registered=1"
	if form["kind"] == "business" {
		target = "/business/login"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) showAdminRegister(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "admin_register", View{Title: "Register Officer", Surface: "public"})
}

func (h *Handler) handleAdminRegister(w http.ResponseWriter, r *http.Request) {
	form := formValues(r, "full_name", "email", "password", "password_confirm")
	_, err := h.admins.Register(r.Context(), admin.RegisterRequest{
		FullName:        form["full_name"],
		Email:           form["email"],
		Password:        form["password"],
		PasswordConfirm: form["password_confirm"],
		Device:          device(r),
	})
	if err != nil {
		h.renderer.Render(w, r, registerStatus(err), "admin_register", View{
			Title: "Register Officer", Surface: "public",
			Error: dErrors.UserMessage(err, "Registration failed. Please try again."),
			Form:  map[string]string{"full_name": form["full_name"], "email": form["email"]},
		})
		return
	}

	h.metrics.Registrations.WithLabelValues(string(domain.KindAdmin)).Inc()
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func registerStatus(err error) int {
	switch {
	case dErrors.HasCode(err, dErrors.CodeInvalidInput):
		return http.StatusBadRequest
	case dErrors.HasCode(err, dErrors.CodeConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
