package user

import "context"

// UserRepository defines data access for accounts.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	SetActive(ctx context.Context, id string, companyID string, active bool) error
	SetFirstLoginDone(ctx context.Context, id string) error
	ListByCompany(ctx context.Context, companyID string) ([]User, error)
	ListAdminsByCompany(ctx context.Context, companyID string) ([]User, error)
	GetSupervisorForUser(ctx context.Context, userID string) (*User, error)
}
