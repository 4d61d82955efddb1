package auth

import (
	"github.com/timedesk/timeclock-backend-go/internal/pkg/validator"
)

// SessionKey is the session-state discriminator returned by keepAlive.
type SessionKey string

const (
	KeyNoToken    SessionKey = "NO_TOKEN"
	KeyNoUser     SessionKey = "NO_USER"
	KeyNoVerified SessionKey = "NO_VERIFIED"
	KeyNoActive   SessionKey = "NO_ACTIVE"
	KeyFirstTime  SessionKey = "FIRST_TIME"
	KeySessionOK  SessionKey = "SESSION_OK"
)

// ========================================
// AUTH DTOs
// ========================================

type LoginRequest struct {
	Username   string `json:"username"` // email
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be a valid email address",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type KeepAliveResponse struct {
	Key     SessionKey `json:"key"`
	Message string     `json:"message"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
