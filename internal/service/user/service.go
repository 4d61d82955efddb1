package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepo}
}

func callerClaims(ctx context.Context) (userID, companyID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", "", fmt.Errorf("user_id claim is missing or invalid")
	}
	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	roleStr, _ := claims["role"].(string)
	return userID, companyID, user.Role(roleStr), nil
}

// Profile implements user.UserService.
func (s *UserServiceImpl) Profile(ctx context.Context) (user.ProfileResponse, error) {
	userID, _, _, err := callerClaims(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(u), nil
}

// Edit implements user.UserService.
func (s *UserServiceImpl) Edit(ctx context.Context, req user.EditProfileRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	callerID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	targetID := callerID
	if req.UserID != nil && *req.UserID != callerID {
		if role != user.RoleAdmin {
			return user.ProfileResponse{}, user.ErrAdminPrivilegeRequired
		}
		targetID = *req.UserID
	}

	u, err := s.UserRepository.GetByID(ctx, targetID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	if u.CompanyID != companyID {
		return user.ProfileResponse{}, user.ErrUserNotFound
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.ProfileResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if req.OfficeID != nil {
		u.OfficeID = req.OfficeID
	}

	if err := s.UserRepository.Update(ctx, u); err != nil {
		return user.ProfileResponse{}, err
	}

	updated, err := s.UserRepository.GetByID(ctx, targetID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.NewProfileResponse(updated), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	_, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	if role != user.RoleAdmin {
		return user.ProfileResponse{}, user.ErrAdminPrivilegeRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		CompanyID:    companyID,
		OfficeID:     req.OfficeID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         user.Role(req.Role),
		IsActive:     true,
		IsVerified:   false,
		FirstLogin:   true,
	})
	if err != nil {
		return user.ProfileResponse{}, err
	}

	return user.NewProfileResponse(created), nil
}

// Disable implements user.UserService.
func (s *UserServiceImpl) Disable(ctx context.Context, req user.DisableUserRequest) error {
	callerID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return err
	}
	if role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}
	if req.UserID == callerID {
		return fmt.Errorf("cannot disable your own account")
	}

	return s.UserRepository.SetActive(ctx, req.UserID, companyID, false)
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.ProfileResponse, error) {
	_, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	if role != user.RoleAdmin && role != user.RoleSupervisor {
		return nil, user.ErrAdminPrivilegeRequired
	}

	users, err := s.UserRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]user.ProfileResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewProfileResponse(u))
	}
	return responses, nil
}
