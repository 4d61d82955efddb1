package user

import "context"

// UserService defines account management operations.
type UserService interface {
	// Profile returns the caller's own profile.
	Profile(ctx context.Context) (ProfileResponse, error)

	// Edit updates the caller's profile, or another user's when the
	// caller is an admin.
	Edit(ctx context.Context, req EditProfileRequest) (ProfileResponse, error)

	// Create registers a new account in the caller's company (admin).
	Create(ctx context.Context, req CreateUserRequest) (ProfileResponse, error)

	// Disable deactivates an account (admin).
	Disable(ctx context.Context, req DisableUserRequest) error

	// List returns the company's accounts (admin).
	List(ctx context.Context) ([]ProfileResponse, error)
}
