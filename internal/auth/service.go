package auth

import (
	"context"
	"errors"
	"log/slog"

	"taxonline/internal/admin"
	"taxonline/internal/audit"
	"taxonline/internal/auth/secrets"
	"taxonline/internal/platform/metrics"
	"taxonline/internal/taxpayer"
	"taxonline/pkg/domain"
	dErrors "taxonline/pkg/domain-errors"
	"taxonline/pkg/platform/sentinel"
)

// Login failure messages. These never distinguish an unknown account from a
// wrong credential.
const (
	msgInvalidTPIN     = "Invalid email or TPIN."
	msgInvalidPassword = "Invalid email or password."
)

// IndividualDirectory resolves individual taxpayers for login.
type IndividualDirectory interface {
	FindIndividualByEmail(ctx context.Context, email string) (taxpayer.Individual, error)
}

// BusinessDirectory resolves business taxpayers for login.
type BusinessDirectory interface {
	FindBusinessByEmail(ctx context.Context, email string) (taxpayer.Business, error)
}

// AdminDirectory resolves officer accounts for login.
type AdminDirectory interface {
	FindByEmail(ctx context.Context, email string) (admin.Admin, error)
}

// Service authenticates principals against their directories, throttles
// repeated failures per account and records the outcome on the audit trail.
type Service struct {
	individuals IndividualDirectory
	businesses  BusinessDirectory
	admins      AdminDirectory
	trail       audit.Store
	lockouts    *Lockout
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewService(individuals IndividualDirectory, businesses BusinessDirectory, admins AdminDirectory, trail audit.Store, lockouts *Lockout, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		individuals: individuals,
		businesses:  businesses,
		admins:      admins,
		trail:       trail,
		lockouts:    lockouts,
		metrics:     m,
		logger:      logger,
	}
}

// LoginTaxpayer authenticates an individual taxpayer by email and TPIN.
func (s *Service) LoginTaxpayer(ctx context.Context, email, tpin, device string) (domain.Principal, error) {
	if email == "" || tpin == "" {
		return domain.Principal{}, dErrors.New(dErrors.CodeInvalidInput, "Email and TPIN are required.")
	}
	if err := s.locked(ctx, domain.KindTaxpayer, email); err != nil {
		return domain.Principal{}, err
	}

	ind, err := s.individuals.FindIndividualByEmail(ctx, email)
	if err != nil {
		return domain.Principal{}, s.failed(ctx, domain.KindTaxpayer, email, device, msgInvalidTPIN, err)
	}
	if err := secrets.Verify(tpin, ind.TPINHash); err != nil {
		return domain.Principal{}, s.failed(ctx, domain.KindTaxpayer, email, device, msgInvalidTPIN, err)
	}

	p := domain.Principal{Kind: domain.KindTaxpayer, ID: ind.ID, TPIN: ind.TPIN, Name: ind.FullName(), Email: ind.Email}
	s.succeeded(ctx, p, device)
	return p, nil
}

// LoginBusiness authenticates a business taxpayer by email and TPIN.
func (s *Service) LoginBusiness(ctx context.Context, email, tpin, device string) (domain.Principal, error) {
	if email == "" || tpin == "" {
		return domain.Principal{}, dErrors.New(dErrors.CodeInvalidInput, "Email and TPIN are required.")
	}
	if err := s.locked(ctx, domain.KindBusiness, email); err != nil {
		return domain.Principal{}, err
	}

	biz, err := s.businesses.FindBusinessByEmail(ctx, email)
	if err != nil {
		return domain.Principal{}, s.failed(ctx, domain.KindBusiness, email, device, msgInvalidTPIN, err)
	}
	if err := secrets.Verify(tpin, biz.TPINHash); err != nil {
		return domain.Principal{}, s.failed(ctx, domain.KindBusiness, email, device, msgInvalidTPIN, err)
	}

	p := domain.Principal{Kind: domain.KindBusiness, ID: biz.ID, TPIN: biz.TPIN, Name: biz.Name, Email: biz.Email}
	s.succeeded(ctx, p, device)
	return p, nil
}

// LoginAdmin authenticates a tax authority officer by email and password.
func (s *Service) LoginAdmin(ctx context.Context, email, password, device string) (domain.Principal, error) {
	if email == "" || password == "" {
		return domain.Principal{}, dErrors.New(dErrors.CodeInvalidInput, "Email and password are required.")
	}
	if err := s.locked(ctx, domain.KindAdmin, email); err != nil {
		return domain.Principal{}, err
	}

	a, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return domain.Principal{}, s.failed(ctx, domain.KindAdmin, email, device, msgInvalidPassword, err)
	}
	if err := secrets.Verify(password, a.PasswordHash); err != nil {
		return domain.Principal{}, s.failed(ctx, domain.KindAdmin, email, device, msgInvalidPassword, err)
	}

	p := domain.Principal{Kind: domain.KindAdmin, ID: a.ID, Name: a.FullName, Email: a.Email}
	s.succeeded(ctx, p, device)
	return p, nil
}

// RecordLogout notes a voluntary logout on the trail.
func (s *Service) RecordLogout(ctx context.Context, p domain.Principal, device string) {
	if p.IsZero() {
		return
	}
	if err := s.trail.Append(ctx, audit.NewEntry(p.Kind, p.ID, audit.ActionLogout, "", device)); err != nil {
		s.logger.WarnContext(ctx, "audit append failed", "action", audit.ActionLogout, "error", err)
	}
}

// locked refuses the attempt when the account is throttled.
func (s *Service) locked(ctx context.Context, kind domain.PrincipalKind, email string) error {
	if err := s.lockouts.Check(ctx, kind, email); err != nil {
		s.metrics.ObserveLogin(string(kind), "locked")
		return err
	}
	return nil
}

func (s *Service) succeeded(ctx context.Context, p domain.Principal, device string) {
	s.metrics.ObserveLogin(string(p.Kind), "success")
	s.lockouts.Clear(ctx, p.Kind, p.Email)
	if err := s.trail.Append(ctx, audit.NewEntry(p.Kind, p.ID, audit.ActionLoginSucceeded, "", device)); err != nil {
		s.logger.WarnContext(ctx, "audit append failed", "action", audit.ActionLoginSucceeded, "error", err)
	}
}

// failed records the attempt and maps every cause to the generic unauthorized
// message for that flow. Infrastructure failures are logged but still come
// back as the same message so the form leaks nothing.
func (s *Service) failed(ctx context.Context, kind domain.PrincipalKind, email, device, message string, cause error) error {
	s.metrics.ObserveLogin(string(kind), "failure")
	s.lockouts.RecordFailure(ctx, kind, email)
	if !errors.Is(cause, sentinel.ErrNotFound) && !dErrors.HasCode(cause, dErrors.CodeUnauthorized) {
		s.logger.ErrorContext(ctx, "login lookup failed", "kind", string(kind), "error", cause)
	}
	if err := s.trail.Append(ctx, audit.NewEntry(kind, 0, audit.ActionLoginFailed, email, device)); err != nil {
		s.logger.WarnContext(ctx, "audit append failed", "action", audit.ActionLoginFailed, "error", err)
	}
	return dErrors.Wrap(cause, dErrors.CodeUnauthorized, message)
}
