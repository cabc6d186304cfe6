package taxpayer

import "context"

// Store is the taxpayer register repository. Create methods persist the
// taxpayers row and the profile row in one transaction; lookups by email
// include the credential hash for login verification.
//
// Stores return sentinel errors (pkg/platform/sentinel) for not-found and
// uniqueness conflicts; the service translates them into domain errors.
type Store interface {
	CreateIndividual(ctx context.Context, ind Individual) (Individual, error)
	CreateBusiness(ctx context.Context, biz Business) (Business, error)

	FindIndividualByEmail(ctx context.Context, email string) (Individual, error)
	FindIndividualByID(ctx context.Context, id int64) (Individual, error)
	FindBusinessByEmail(ctx context.Context, email string) (Business, error)
	FindBusinessByID(ctx context.Context, id int64) (Business, error)

	CountByStatus(ctx context.Context) (StatusCounts, error)
	ListDirectory(ctx context.Context, limit int) ([]DirectoryEntry, error)
}
