package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/license"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
)

type licenseRepository struct {
	db *database.DB
}

func NewLicenseRepository(db *database.DB) license.LicenseRepository {
	return &licenseRepository{db: db}
}

// Create implements license.LicenseRepository.
func (r *licenseRepository) Create(ctx context.Context, l license.License) (license.License, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO licenses (
			user_id, company_id, type, date_start, date_end,
			time_start, time_end, comments, status, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.UserID,
		l.CompanyID,
		l.Type,
		l.DateStart,
		l.DateEnd,
		l.TimeStart,
		l.TimeEnd,
		l.Comments,
		l.Status,
		l.IsActive,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return license.License{}, fmt.Errorf("failed to create license: %w", err)
	}

	return l, nil
}

// GetByID implements license.LicenseRepository.
func (r *licenseRepository) GetByID(ctx context.Context, id string, companyID string) (license.License, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.user_id, l.company_id, l.type, l.date_start, l.date_end,
		       l.time_start, l.time_end, l.comments, l.status, l.is_active,
		       l.approved_by, l.approved_at, l.created_at, l.updated_at,
		       u.name AS user_name
		FROM licenses l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.id = $1 AND l.company_id = $2
	`

	var l license.License
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&l.ID, &l.UserID, &l.CompanyID, &l.Type, &l.DateStart, &l.DateEnd,
		&l.TimeStart, &l.TimeEnd, &l.Comments, &l.Status, &l.IsActive,
		&l.ApprovedBy, &l.ApprovedAt, &l.CreatedAt, &l.UpdatedAt,
		&l.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return license.License{}, license.ErrLicenseNotFound
		}
		return license.License{}, fmt.Errorf("failed to get license by ID: %w", err)
	}

	docs, err := r.loadDocuments(ctx, l.ID)
	if err != nil {
		return license.License{}, err
	}
	l.Documents = docs

	return l, nil
}

// Update implements license.LicenseRepository.
func (r *licenseRepository) Update(ctx context.Context, l license.License) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE licenses
		SET date_start = $2, date_end = $3, time_start = $4, time_end = $5,
		    comments = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1 AND company_id = $8
	`

	tag, err := q.Exec(ctx, query,
		l.ID, l.DateStart, l.DateEnd, l.TimeStart, l.TimeEnd,
		l.Comments, l.IsActive, l.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update license: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return license.ErrLicenseNotFound
	}

	return nil
}

// SetStatus implements license.LicenseRepository. Only PENDING rows match,
// so a second decision on the same request fails with ErrAlreadyProcessed.
func (r *licenseRepository) SetStatus(ctx context.Context, id string, companyID string, status license.LicenseStatus, approvedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE licenses
		SET status = $3, approved_by = $4, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = $5
	`

	tag, err := q.Exec(ctx, query, id, companyID, status, approvedBy, license.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to set license status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return license.ErrAlreadyProcessed
	}

	return nil
}

// List implements license.LicenseRepository.
func (r *licenseRepository) List(ctx context.Context, filter license.ListLicensesRequest, companyID string) ([]license.License, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "l.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND l.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateStart != nil && *filter.DateStart != "" {
		baseWhere += fmt.Sprintf(" AND l.date_end >= $%d", argIdx)
		args = append(args, *filter.DateStart)
		argIdx++
	}
	if filter.DateEnd != nil && *filter.DateEnd != "" {
		baseWhere += fmt.Sprintf(" AND l.date_start <= $%d", argIdx)
		args = append(args, *filter.DateEnd)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM licenses l WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count licenses: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT l.id, l.user_id, l.company_id, l.type, l.date_start, l.date_end,
		       l.time_start, l.time_end, l.comments, l.status, l.is_active,
		       l.approved_by, l.approved_at, l.created_at, l.updated_at,
		       u.name AS user_name
		FROM licenses l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE %s
		ORDER BY l.date_start DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query licenses: %w", err)
	}
	defer rows.Close()

	var licenses []license.License
	var ids []string
	for rows.Next() {
		var l license.License
		err := rows.Scan(
			&l.ID, &l.UserID, &l.CompanyID, &l.Type, &l.DateStart, &l.DateEnd,
			&l.TimeStart, &l.TimeEnd, &l.Comments, &l.Status, &l.IsActive,
			&l.ApprovedBy, &l.ApprovedAt, &l.CreatedAt, &l.UpdatedAt,
			&l.UserName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan license: %w", err)
		}
		licenses = append(licenses, l)
		ids = append(ids, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachDocuments(ctx, licenses, ids); err != nil {
		return nil, 0, err
	}

	return licenses, total, nil
}

// Delete implements license.LicenseRepository.
func (r *licenseRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM licenses WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete license: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return license.ErrLicenseNotFound
	}

	return nil
}

func (r *licenseRepository) loadDocuments(ctx context.Context, licenseID string) ([]license.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, license_id, user_id, company_id, name, url, type, created_at
		FROM documents
		WHERE license_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, licenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []license.Document
	for rows.Next() {
		var d license.Document
		if err := rows.Scan(&d.ID, &d.LicenseID, &d.UserID, &d.CompanyID, &d.Name, &d.URL, &d.Type, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *licenseRepository) attachDocuments(ctx context.Context, licenses []license.License, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, license_id, user_id, company_id, name, url, type, created_at
		FROM documents
		WHERE license_id IN (%s)
		ORDER BY created_at ASC
	`, strings.Join(placeholders, ", "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	byLicense := make(map[string][]license.Document)
	for rows.Next() {
		var d license.Document
		if err := rows.Scan(&d.ID, &d.LicenseID, &d.UserID, &d.CompanyID, &d.Name, &d.URL, &d.Type, &d.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		if d.LicenseID != nil {
			byLicense[*d.LicenseID] = append(byLicense[*d.LicenseID], d)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range licenses {
		licenses[i].Documents = byLicense[licenses[i].ID]
	}
	return nil
}
