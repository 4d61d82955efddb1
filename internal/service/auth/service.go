package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/timedesk/timeclock-backend-go/internal/config"
	"github.com/timedesk/timeclock-backend-go/internal/domain/auth"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/email"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwtSvc    jwt.Service
	googleSvc oauth.GoogleService
	emailSvc  email.EmailService
	appCfg    config.AppConfig
}

func NewAuthService(
	userRepo user.UserRepository,
	jwtSvc jwt.Service,
	googleSvc oauth.GoogleService,
	emailSvc email.EmailService,
	appCfg config.AppConfig,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		jwtSvc:         jwtSvc,
		googleSvc:      googleSvc,
		emailSvc:       emailSvc,
		appCfg:         appCfg,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrUserNotActive
	}

	token, expiresAt, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Email, u.CompanyID, u.Role, req.RememberMe)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return auth.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// KeepAlive implements auth.AuthService.
func (s *AuthServiceImpl) KeepAlive(ctx context.Context) auth.KeepAliveResponse {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return auth.KeepAliveResponse{Key: auth.KeyNoToken, Message: "no valid session token"}
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.KeepAliveResponse{Key: auth.KeyNoToken, Message: "no valid session token"}
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.KeepAliveResponse{Key: auth.KeyNoUser, Message: "account no longer exists"}
	}
	if !u.IsVerified {
		return auth.KeepAliveResponse{Key: auth.KeyNoVerified, Message: "email address not verified"}
	}
	if !u.IsActive {
		return auth.KeepAliveResponse{Key: auth.KeyNoActive, Message: "account is disabled"}
	}
	if u.FirstLogin {
		return auth.KeepAliveResponse{Key: auth.KeyFirstTime, Message: "password change required on first login"}
	}

	return auth.KeepAliveResponse{Key: auth.KeySessionOK, Message: "session is valid"}
}

// LoginWithGoogle implements auth.AuthService.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	token, err := s.googleSvc.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	info, err := s.googleSvc.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	u, err := s.UserRepository.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrUserNotFound
		}
		return auth.LoginResponse{}, err
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrUserNotActive
	}

	// First Google login links the account and confirms the address.
	if u.GoogleID == nil || !u.IsVerified {
		u.GoogleID = &info.GoogleID
		u.IsVerified = u.IsVerified || info.VerifiedEmail
		if err := s.UserRepository.Update(ctx, u); err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Email, u.CompanyID, u.Role, false)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return auth.LoginResponse{Token: accessToken, ExpiresAt: expiresAt}, nil
}

// ChangePassword implements auth.AuthService.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.PasswordHash = string(hash)
	if err := s.UserRepository.Update(ctx, u); err != nil {
		return err
	}
	if u.FirstLogin {
		if err := s.UserRepository.SetFirstLoginDone(ctx, u.ID); err != nil {
			return err
		}
	}

	return nil
}

// ForgotPassword implements auth.AuthService.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		// Unknown addresses get the same answer as known ones.
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, expiresAt, err := s.jwtSvc.GenerateResetToken(u.ID)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appCfg.FrontendURL, token)
	expiry := time.Unix(expiresAt, 0).Format(time.RFC1123)

	go func() {
		if err := s.emailSvc.SendPasswordReset(u.Email, resetLink, expiry); err != nil {
			slog.Error("Failed to send password reset email", "to", u.Email, "error", err)
		}
	}()

	return nil
}
