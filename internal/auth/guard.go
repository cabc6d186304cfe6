package auth

import (
	"net/http"

	"taxonline/pkg/domain"
	"taxonline/pkg/requestcontext"
)

// Login entry points per principal kind. The guard redirects here when no
// matching session is present; being logged out is the normal path, not an
// error.
var loginPaths = map[domain.PrincipalKind]string{
	domain.KindTaxpayer: "/login",
	domain.KindBusiness: "/business/login",
	domain.KindAdmin:    "/admin/login",
}

// Require returns middleware that admits only sessions of the given principal
// kind. Anything else is redirected to the matching login page with no page
// body produced.
func (m *Manager) Require(kind domain.PrincipalKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := m.Read(r.Context(), r)
			if err != nil || session.Principal.Kind != kind {
				http.Redirect(w, r, loginPaths[kind], http.StatusSeeOther)
				return
			}
			ctx := requestcontext.WithPrincipal(r.Context(), session.Principal)
			ctx = requestcontext.WithSessionID(ctx, session.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
