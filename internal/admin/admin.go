// Package admin manages tax authority officer accounts.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/asaskevich/govalidator"

	"taxonline/internal/audit"
	"taxonline/internal/auth/secrets"
	"taxonline/pkg/domain"
	dErrors "taxonline/pkg/domain-errors"
	"taxonline/pkg/platform/sentinel"
)

// Admin is a tax authority officer. PasswordHash is never serialized.
type Admin struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string `json:"-"`
}

// Store is the officer account repository.
type Store interface {
	Create(ctx context.Context, a Admin) (Admin, error)
	FindByEmail(ctx context.Context, email string) (Admin, error)
	FindByID(ctx context.Context, id int64) (Admin, error)
}

// Service handles officer registration. Completed registrations land on the
// audit trail.
type Service struct {
	store  Store
	trail  audit.Store
	logger *slog.Logger
}

func NewService(store Store, trail audit.Store, logger *slog.Logger) *Service {
	return &Service{store: store, trail: trail, logger: logger}
}

// RegisterRequest carries the admin registration form fields. Device
// describes the registering client for the audit trail.
type RegisterRequest struct {
	FullName        string
	Email           string
	Password        string
	PasswordConfirm string
	Device          string
}

// Register validates and creates an officer account. Passwords must be at
// least 8 characters; duplicates come back as recoverable conflicts.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Admin, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if req.FullName == "" {
		return Admin{}, dErrors.New(dErrors.CodeInvalidInput, "Full name is required.")
	}
	if req.Email == "" || !govalidator.IsEmail(req.Email) {
		return Admin{}, dErrors.New(dErrors.CodeInvalidInput, "A valid email address is required.")
	}
	if len(req.Password) < 8 {
		return Admin{}, dErrors.New(dErrors.CodeInvalidInput, "Password must be at least 8 characters.")
	}
	if req.Password != req.PasswordConfirm {
		return Admin{}, dErrors.New(dErrors.CodeInvalidInput, "Passwords do not match.")
	}

	hash, err := secrets.Hash(req.Password)
	if err != nil {
		return Admin{}, err
	}

	a, err := s.store.Create(ctx, Admin{FullName: req.FullName, Email: req.Email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Admin{}, dErrors.New(dErrors.CodeConflict, "That email is already registered.")
		}
		return Admin{}, dErrors.Wrap(err, dErrors.CodeInternal, "Registration failed. Please try again.")
	}

	if err := s.trail.Append(ctx, audit.NewEntry(domain.KindAdmin, a.ID, audit.ActionRegistered, "", req.Device)); err != nil {
		s.logger.WarnContext(ctx, "audit append failed", "action", audit.ActionRegistered, "error", err)
	}
	return a, nil
}
