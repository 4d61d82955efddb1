package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	Update(ctx context.Context, c Company) error
	List(ctx context.Context) ([]Company, error)
	Delete(ctx context.Context, id string) error
}

type OfficeRepository interface {
	Create(ctx context.Context, o Office) (Office, error)
	GetByID(ctx context.Context, id string, companyID string) (Office, error)
	ListByCompany(ctx context.Context, companyID string) ([]Office, error)
	Delete(ctx context.Context, id string, companyID string) error
}
