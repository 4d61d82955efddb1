package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotVerified    = errors.New("user email not verified")
	ErrUserNotActive      = errors.New("user account disabled")
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
)
