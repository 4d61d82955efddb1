package company

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/company"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	company.OfficeRepository
}

func NewCompanyService(companyRepo company.CompanyRepository, officeRepo company.OfficeRepository) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepo,
		OfficeRepository:  officeRepo,
	}
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

// Create implements company.CompanyService.
func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	_, _, role, err := callerClaims(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if role != user.RoleAdmin {
		return company.CompanyResponse{}, user.ErrAdminPrivilegeRequired
	}

	created, err := s.CompanyRepository.Create(ctx, company.Company{
		Name:     req.Name,
		TaxID:    req.TaxID,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return company.NewCompanyResponse(created), nil
}

// Get implements company.CompanyService.
func (s *CompanyServiceImpl) Get(ctx context.Context) (company.CompanyResponse, error) {
	_, companyID, _, err := callerClaims(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	c, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(c), nil
}

// Update implements company.CompanyService.
func (s *CompanyServiceImpl) Update(ctx context.Context, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	_, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if role != user.RoleAdmin {
		return company.CompanyResponse{}, user.ErrAdminPrivilegeRequired
	}

	c, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.TaxID != nil {
		c.TaxID = req.TaxID
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}

	if err := s.CompanyRepository.Update(ctx, c); err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(c), nil
}

// List implements company.CompanyService.
func (s *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	_, _, role, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	if role != user.RoleAdmin {
		return nil, user.ErrAdminPrivilegeRequired
	}

	companies, err := s.CompanyRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, company.NewCompanyResponse(c))
	}
	return responses, nil
}

// CreateOffice implements company.CompanyService.
func (s *CompanyServiceImpl) CreateOffice(ctx context.Context, req company.CreateOfficeRequest) (company.OfficeResponse, error) {
	if err := req.Validate(); err != nil {
		return company.OfficeResponse{}, err
	}

	_, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return company.OfficeResponse{}, err
	}
	if role != user.RoleAdmin {
		return company.OfficeResponse{}, user.ErrAdminPrivilegeRequired
	}

	created, err := s.OfficeRepository.Create(ctx, company.Office{
		CompanyID: companyID,
		Name:      req.Name,
		Address:   req.Address,
	})
	if err != nil {
		return company.OfficeResponse{}, err
	}

	return company.NewOfficeResponse(created), nil
}

// ListOffices implements company.CompanyService.
func (s *CompanyServiceImpl) ListOffices(ctx context.Context) ([]company.OfficeResponse, error) {
	_, companyID, _, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}

	offices, err := s.OfficeRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]company.OfficeResponse, 0, len(offices))
	for _, o := range offices {
		responses = append(responses, company.NewOfficeResponse(o))
	}
	return responses, nil
}

// DeleteOffice implements company.CompanyService.
func (s *CompanyServiceImpl) DeleteOffice(ctx context.Context, id string) error {
	_, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return err
	}
	if role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	return s.OfficeRepository.Delete(ctx, id, companyID)
}
