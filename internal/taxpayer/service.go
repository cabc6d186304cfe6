package taxpayer

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

// Service handles taxpayer registration. Lookups for login go straight to the
// store; only writes carry business rules worth a service layer. Completed
// registrations land on the audit trail.
type Service struct {
	store  Store
	trail  audit.Store
	logger *slog.Logger
}

func NewService(store Store, trail audit.Store, logger *slog.Logger) *Service {
	return &Service{store: store, trail: trail, logger: logger}
}

// RegisterIndividualRequest carries the individual registration form fields.
// Device describes the registering client for the audit trail.
type RegisterIndividualRequest struct {
	FirstName   string
	LastName    string
	Email       string
	TPIN        string
	TPINConfirm string
	Device      string
}

// RegisterBusinessRequest carries the business registration form fields.
type RegisterBusinessRequest struct {
	BusinessName string
	Email        string
	TPIN         string
	TPINConfirm  string
	Device       string
}

// RegisterIndividual validates the form, hashes the TPIN and persists the
// taxpayer transactionally. Validation failures and uniqueness conflicts come
// back as coded errors with user-facing messages; nothing is written for them.
func (s *Service) RegisterIndividual(ctx context.Context, req RegisterIndividualRequest) (Individual, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.TPIN = strings.TrimSpace(req.TPIN)
	req.TPINConfirm = strings.TrimSpace(req.TPINConfirm)

	if req.FirstName == "" || req.LastName == "" {
		return Individual{}, dErrors.New(dErrors.CodeInvalidInput, "First and last name are required.")
	}
	if err := validateCommon(req.Email, req.TPIN, req.TPINConfirm); err != nil {
		return Individual{}, err
	}

	hash, err := secrets.Hash(req.TPIN)
	if err != nil {
		return Individual{}, err
	}

	ind, err := s.store.CreateIndividual(ctx, Individual{
		TPIN:      req.TPIN,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		TPINHash:  hash,
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Individual{}, dErrors.New(dErrors.CodeConflict, "This TPIN or email is already registered. Please log in instead.")
		}
		return Individual{}, dErrors.Wrap(err, dErrors.CodeInternal, "Registration failed. Please try again.")
	}

	s.recordRegistered(ctx, domain.KindTaxpayer, ind.ID, req.Device)
	return ind, nil
}

// RegisterBusiness is the business counterpart of RegisterIndividual.
func (s *Service) RegisterBusiness(ctx context.Context, req RegisterBusinessRequest) (Business, error) {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.Email = strings.TrimSpace(req.Email)
	req.TPIN = strings.TrimSpace(req.TPIN)
	req.TPINConfirm = strings.TrimSpace(req.TPINConfirm)

	if req.BusinessName == "" {
		return Business{}, dErrors.New(dErrors.CodeInvalidInput, "Business name is required.")
	}
	if err := validateCommon(req.Email, req.TPIN, req.TPINConfirm); err != nil {
		return Business{}, err
	}

	hash, err := secrets.Hash(req.TPIN)
	if err != nil {
		return Business{}, err
	}

	biz, err := s.store.CreateBusiness(ctx, Business{
		TPIN:     req.TPIN,
		Name:     req.BusinessName,
		Email:    req.Email,
		TPINHash: hash,
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Business{}, dErrors.New(dErrors.CodeConflict, "This TPIN or email is already registered. Please log in instead.")
		}
		return Business{}, dErrors.Wrap(err, dErrors.CodeInternal, "Registration failed. Please try again.")
	}

	s.recordRegistered(ctx, domain.KindBusiness, biz.ID, req.Device)
	return biz, nil
}

func (s *Service) recordRegistered(ctx context.Context, kind domain.PrincipalKind, actorID int64, device string) {
	if err := s.trail.Append(ctx, audit.NewEntry(kind, actorID, audit.ActionRegistered, "", device)); err != nil {
		s.logger.WarnContext(ctx, "audit append failed", "action", audit.ActionRegistered, "error", err)
	}
}

func validateCommon(email, tpin, confirm string) error {
	if email == "" || !govalidator.IsEmail(email) {
		return dErrors.New(dErrors.CodeInvalidInput, "A valid email address is required.")
	}
	if tpin == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "TPIN is required.")
	}
	if tpin != confirm {
		return dErrors.New(dErrors.CodeInvalidInput, "The two TPIN entries do not match.")
	}
	return nil
}
