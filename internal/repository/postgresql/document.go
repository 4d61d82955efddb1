package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/license"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
)

type documentRepository struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) license.DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements license.DocumentRepository.
func (r *documentRepository) Create(ctx context.Context, d license.Document) (license.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO documents (license_id, user_id, company_id, name, url, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		d.LicenseID, d.UserID, d.CompanyID, d.Name, d.URL, d.Type,
	).Scan(&d.ID, &d.CreatedAt)

	if err != nil {
		return license.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	return d, nil
}

// GetByID implements license.DocumentRepository.
func (r *documentRepository) GetByID(ctx context.Context, id string, companyID string) (license.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, license_id, user_id, company_id, name, url, type, created_at
		FROM documents
		WHERE id = $1 AND company_id = $2
	`

	var d license.Document
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&d.ID, &d.LicenseID, &d.UserID, &d.CompanyID, &d.Name, &d.URL, &d.Type, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return license.Document{}, license.ErrDocumentNotFound
		}
		return license.Document{}, fmt.Errorf("failed to get document by ID: %w", err)
	}

	return d, nil
}

// ListByLicense implements license.DocumentRepository.
func (r *documentRepository) ListByLicense(ctx context.Context, licenseID string) ([]license.Document, error) {
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

// CountByLicense implements license.DocumentRepository.
func (r *documentRepository) CountByLicense(ctx context.Context, licenseID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE license_id = $1`, licenseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}

// Delete implements license.DocumentRepository.
func (r *documentRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return license.ErrDocumentNotFound
	}

	return nil
}
