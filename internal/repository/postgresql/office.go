package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/company"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
)

type officeRepository struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) company.OfficeRepository {
	return &officeRepository{db: db}
}

// Create implements company.OfficeRepository.
func (r *officeRepository) Create(ctx context.Context, o company.Office) (company.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO offices (company_id, name, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, o.CompanyID, o.Name, o.Address).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return company.Office{}, fmt.Errorf("failed to create office: %w", err)
	}

	return o, nil
}

// GetByID implements company.OfficeRepository.
func (r *officeRepository) GetByID(ctx context.Context, id string, companyID string) (company.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM offices
		WHERE id = $1 AND company_id = $2
	`

	var o company.Office
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&o.ID, &o.CompanyID, &o.Name, &o.Address, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Office{}, company.ErrOfficeNotFound
		}
		return company.Office{}, fmt.Errorf("failed to get office by ID: %w", err)
	}

	return o, nil
}

// ListByCompany implements company.OfficeRepository.
func (r *officeRepository) ListByCompany(ctx context.Context, companyID string) ([]company.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM offices
		WHERE company_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}
	defer rows.Close()

	var offices []company.Office
	for rows.Next() {
		var o company.Office
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Name, &o.Address, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, o)
	}
	return offices, rows.Err()
}

// Delete implements company.OfficeRepository.
func (r *officeRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM offices WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete office: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrOfficeNotFound
	}

	return nil
}
