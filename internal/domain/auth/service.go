package auth

import "context"

// AuthService defines authentication operations. Token issuance lifetime
// is 8h, or 30 days when the login carries remember_me.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// KeepAlive inspects the caller's token and account state and reports
	// the session status key the frontend switches on.
	KeepAlive(ctx context.Context) KeepAliveResponse

	// LoginWithGoogle resolves an OAuth code to a local session.
	LoginWithGoogle(ctx context.Context, code string) (LoginResponse, error)

	ChangePassword(ctx context.Context, req ChangePasswordRequest) error

	// ForgotPassword emails a reset link. Always succeeds from the
	// caller's perspective to avoid account enumeration.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
}
