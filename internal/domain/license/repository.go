package license

import (
	"context"
)

// LicenseRepository defines data access for absence requests.
type LicenseRepository interface {
	Create(ctx context.Context, l License) (License, error)

	// GetByID loads a license with its documents, company scoped.
	GetByID(ctx context.Context, id string, companyID string) (License, error)

	Update(ctx context.Context, l License) error

	// SetStatus records an approval decision. Only rows still PENDING
	// match; zero rows means the request was already processed.
	SetStatus(ctx context.Context, id string, companyID string, status LicenseStatus, approvedBy string) error

	// List returns licenses with filters and pagination, company scoped.
	List(ctx context.Context, filter ListLicensesRequest, companyID string) ([]License, int64, error)

	// Delete removes the license row; document rows cascade at the
	// database level. Backing files are the service's responsibility.
	Delete(ctx context.Context, id string, companyID string) error
}

// DocumentRepository defines data access for uploaded document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, d Document) (Document, error)
	GetByID(ctx context.Context, id string, companyID string) (Document, error)
	ListByLicense(ctx context.Context, licenseID string) ([]Document, error)
	CountByLicense(ctx context.Context, licenseID string) (int, error)
	Delete(ctx context.Context, id string, companyID string) error
}
