package company

import "context"

// CompanyService defines tenant administration. Company-level operations
// are platform-admin only; office operations are scoped to the caller's
// company.
type CompanyService interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	Get(ctx context.Context) (CompanyResponse, error)
	Update(ctx context.Context, req UpdateCompanyRequest) (CompanyResponse, error)
	List(ctx context.Context) ([]CompanyResponse, error)

	CreateOffice(ctx context.Context, req CreateOfficeRequest) (OfficeResponse, error)
	ListOffices(ctx context.Context) ([]OfficeResponse, error)
	DeleteOffice(ctx context.Context, id string) error
}
