package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"taxonline/internal/admin"
	"taxonline/internal/apitoken"
	"taxonline/internal/audit"
	"taxonline/internal/auth"
	"taxonline/internal/dashboard"
	"taxonline/internal/platform/metrics"
	"taxonline/internal/revenue"
	"taxonline/internal/risk"
	"taxonline/internal/taxpayer"
	"taxonline/pkg/domain"
)

var testMetrics = metrics.New()

type fakeDB struct{ err error }

func (f *fakeDB) Ping(context.Context) error { return f.err }

type WebSuite struct {
	suite.Suite

	router   http.Handler
	db       *fakeDB
	sessions *auth.MemorySessionStore
	trail    *audit.MemoryStore
	returns  *revenue.MemoryReturns
	payments *revenue.MemoryPayments
	notices  *revenue.MemoryNotices
}

func (s *WebSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	taxpayers := taxpayer.NewMemory()
	admins := admin.NewMemory()
	s.trail = audit.NewMemory()
	s.sessions = auth.NewMemorySessionStore()
	s.returns = revenue.NewMemoryReturns()
	s.payments = revenue.NewMemoryPayments()
	assessments := revenue.NewMemoryAssessments()
	s.notices = revenue.NewMemoryNotices()
	audits := risk.NewMemory()
	s.db = &fakeDB{}

	taxpayerSvc := taxpayer.NewService(taxpayers, s.trail, logger)
	adminSvc := admin.NewService(admins, s.trail, logger)
	lockouts := auth.NewLockout(auth.NewMemoryLockoutStore(), auth.DefaultLockoutPolicy(), logger)
	loginSvc := auth.NewService(taxpayers, taxpayers, admins, s.trail, lockouts, testMetrics, logger)
	manager := auth.NewManager(s.sessions, "taxonline_session", time.Hour)
	dashboards := dashboard.NewService(taxpayers, s.returns, s.payments, assessments, s.notices, audits, testMetrics)
	tokens := apitoken.NewService("test-signing-key", time.Hour)

	renderer, err := NewRenderer(logger, testMetrics)
	s.Require().NoError(err)

	handler := NewHandler(HandlerDeps{
		Renderer:   renderer,
		Sessions:   manager,
		Logins:     loginSvc,
		Taxpayers:  taxpayerSvc,
		Admins:     adminSvc,
		Dashboards: dashboards,
		Returns:    s.returns,
		Payments:   s.payments,
		Notices:    s.notices,
		Register:   taxpayers,
		Tokens:     tokens,
		DB:         s.db,
		Metrics:    testMetrics,
		Logger:     logger,
	})
	s.router = handler.NewRouter()
}

func (s *WebSuite) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *WebSuite) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *WebSuite) registerJane() {
	rec := s.postForm("/register", url.Values{
		"kind":         {"individual"},
		"first_name":   {"Jane"},
		"last_name":    {"Doe"},
		"email":        {"jane@example.com"},
		"tpin":         {"1234"},
		"tpin_confirm": {"1234"},
	})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/login?registered=1", rec.Header().Get("Location"))
}

func (s *WebSuite) loginJane() *http.Cookie {
	rec := s.postForm("/login", url.Values{"email": {"jane@example.com"}, "tpin": {"1234"}})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/portal/dashboard", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 1)
	return cookies[0]
}

func (s *WebSuite) TestRegisterThenLogin() {
	s.registerJane()
	cookie := s.loginJane()

	rec := s.get("/portal/dashboard", cookie)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Jane Doe")
}

func (s *WebSuite) TestRegisterWritesAuditEntry() {
	s.registerJane()

	entries := s.trail.All()
	s.Require().Len(entries, 1)
	s.Equal(audit.ActionRegistered, entries[0].Action)
	s.Equal(domain.KindTaxpayer, entries[0].ActorKind)
	s.NotZero(entries[0].ActorID)
}

func (s *WebSuite) TestRepeatedLoginFailuresLockTheAccount() {
	s.registerJane()

	form := url.Values{"email": {"jane@example.com"}, "tpin": {"9999"}}
	for i := 0; i < auth.DefaultLockoutPolicy().MaxFailures; i++ {
		rec := s.postForm("/login", form)
		s.Equal(http.StatusUnauthorized, rec.Code)
	}

	rec := s.postForm("/login", url.Values{"email": {"jane@example.com"}, "tpin": {"1234"}})
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Contains(rec.Body.String(), "Too many failed attempts.")
	s.Equal(0, s.sessions.Len())
}

func (s *WebSuite) TestLoginWrongTPIN() {
	s.registerJane()

	rec := s.postForm("/login", url.Values{"email": {"jane@example.com"}, "tpin": {"9999"}})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Invalid email or TPIN.")
	s.Empty(rec.Result().Cookies(), "no session on a failed login")
	s.Equal(0, s.sessions.Len())
}

func (s *WebSuite) TestLoginUnknownEmailSameMessage() {
	rec := s.postForm("/login", url.Values{"email": {"nobody@example.com"}, "tpin": {"1234"}})
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Invalid email or TPIN.")
}

func (s *WebSuite) TestRegisterMismatchedTPINWritesNothing() {
	rec := s.postForm("/register", url.Values{
		"kind":         {"individual"},
		"first_name":   {"Jane"},
		"last_name":    {"Doe"},
		"email":        {"jane@example.com"},
		"tpin":         {"1234"},
		"tpin_confirm": {"4321"},
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "do not match")

	// The email is still free, so a correct registration succeeds.
	s.registerJane()
}

func (s *WebSuite) TestGuardRedirectsWithoutSession() {
	for path, login := range map[string]string{
		"/portal/dashboard":   "/login",
		"/business/dashboard": "/business/login",
		"/admin/dashboard":    "/admin/login",
	} {
		rec := s.get(path)
		s.Equal(http.StatusSeeOther, rec.Code, path)
		s.Equal(login, rec.Header().Get("Location"), path)
	}
}

func (s *WebSuite) TestPortalPagesRenderEmptyState() {
	s.registerJane()
	cookie := s.loginJane()

	for _, path := range []string{"/portal/filings", "/portal/payments", "/portal/compliance", "/portal/profile"} {
		rec := s.get(path, cookie)
		s.Equal(http.StatusOK, rec.Code, path)
	}
	s.Contains(s.get("/portal/filings", cookie).Body.String(), "No data available")
}

func (s *WebSuite) TestPortalFilingsScopedToTaxpayer() {
	s.registerJane()
	cookie := s.loginJane()

	s.returns.Add(revenue.TaxReturn{TPIN: "1234", TaxYear: 2025, TaxType: "Income Tax",
		Status: revenue.ReturnFiled, DueDate: time.Now()})
	s.returns.Add(revenue.TaxReturn{TPIN: "9999", TaxYear: 2025, TaxType: "Secret VAT",
		Status: revenue.ReturnFiled, DueDate: time.Now()})

	body := s.get("/portal/filings", cookie).Body.String()
	s.Contains(body, "Income Tax")
	s.NotContains(body, "Secret VAT")
}

func (s *WebSuite) TestLogoutClearsSession() {
	s.registerJane()
	cookie := s.loginJane()

	rec := s.get("/logout", cookie)
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/login", rec.Header().Get("Location"))
	s.Equal(0, s.sessions.Len())

	rec = s.get("/portal/dashboard", cookie)
	s.Equal(http.StatusSeeOther, rec.Code, "old cookie no longer admits")
}

func (s *WebSuite) registerAdmin() {
	rec := s.postForm("/admin/register", url.Values{
		"full_name":        {"Brenda Phiri"},
		"email":            {"brenda@zra.example"},
		"password":         {"hunter2hunter2"},
		"password_confirm": {"hunter2hunter2"},
	})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
}

func (s *WebSuite) TestAdminPagesRender() {
	s.registerAdmin()
	rec := s.postForm("/admin/login", url.Values{"email": {"brenda@zra.example"}, "password": {"hunter2hunter2"}})
	s.Require().Equal(http.StatusSeeOther, rec.Code)
	cookie := rec.Result().Cookies()[0]

	for _, path := range []string{
		"/admin/dashboard", "/admin/analytics", "/admin/risk",
		"/admin/taxpayers", "/admin/alerts", "/admin/reports",
	} {
		rec := s.get(path, cookie)
		s.Equal(http.StatusOK, rec.Code, path)
	}
}

func (s *WebSuite) TestAPITokenFlow() {
	s.registerAdmin()

	body := strings.NewReader(`{"email":"brenda@zra.example","password":"hunter2hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token", body)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &token))
	s.Equal("Bearer", token.TokenType)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "compliance_rate")
}

func (s *WebSuite) TestAPIOverviewRejectsBadToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "application/json")
}

func (s *WebSuite) TestAPITokenRejectsWrongCredentials() {
	s.registerAdmin()
	body := strings.NewReader(`{"email":"brenda@zra.example","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/token", body)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Invalid email or password.")
}

func (s *WebSuite) TestHealth() {
	rec := s.get("/healthz")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"database":"ok","sessions":"ok"}`, rec.Body.String())

	s.db.err = context.DeadlineExceeded
	rec = s.get("/healthz")
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Contains(rec.Body.String(), "unavailable")
}

func (s *WebSuite) TestRerenderIsIdempotent() {
	s.registerJane()
	cookie := s.loginJane()

	first := s.get("/portal/compliance", cookie).Body.String()
	second := s.get("/portal/compliance", cookie).Body.String()
	s.Equal(first, second)
}

func TestWebSuite(t *testing.T) {
	suite.Run(t, new(WebSuite))
}
