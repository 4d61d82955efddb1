package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
)

const userColumns = `
	u.id, u.company_id, u.office_id, u.email, u.password_hash, u.name, u.role,
	u.is_active, u.is_verified, u.first_login, u.google_id, u.created_at, u.updated_at
`

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.OfficeID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.IsActive, &u.IsVerified, &u.FirstLogin, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (company_id, office_id, email, password_hash, name, role,
			is_active, is_verified, first_login, google_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.CompanyID, u.OfficeID, u.Email, u.PasswordHash, u.Name, u.Role,
		u.IsActive, u.IsVerified, u.FirstLogin, u.GoogleID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `, c.name, o.name
		FROM users u
		JOIN companies c ON c.id = u.company_id
		LEFT JOIN offices o ON o.id = u.office_id
		WHERE u.id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.CompanyID, &u.OfficeID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.IsActive, &u.IsVerified, &u.FirstLogin, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt,
		&u.CompanyName, &u.OfficeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.email = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET office_id = $2, email = $3, password_hash = $4, name = $5, role = $6,
			is_verified = $7, google_id = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		u.ID, u.OfficeID, u.Email, u.PasswordHash, u.Name, u.Role,
		u.IsVerified, u.GoogleID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SetActive implements user.UserRepository.
func (r *userRepository) SetActive(ctx context.Context, id string, companyID string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_active = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID, active)
	if err != nil {
		return fmt.Errorf("failed to set user active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SetFirstLoginDone implements user.UserRepository.
func (r *userRepository) SetFirstLoginDone(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE users SET first_login = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to clear first login flag: %w", err)
	}

	return nil
}

// ListByCompany implements user.UserRepository.
func (r *userRepository) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	return r.list(ctx, `u.company_id = $1`, companyID)
}

// ListAdminsByCompany implements user.UserRepository.
func (r *userRepository) ListAdminsByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	return r.list(ctx, `u.company_id = $1 AND u.role = 'admin' AND u.is_active`, companyID)
}

// GetSupervisorForUser implements user.UserRepository.
func (r *userRepository) GetSupervisorForUser(ctx context.Context, userID string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN users e ON e.office_id = u.office_id AND e.company_id = u.company_id
		WHERE e.id = $1 AND u.role = 'supervisor' AND u.is_active
		ORDER BY u.created_at ASC
		LIMIT 1
	`

	u, err := scanUser(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get supervisor: %w", err)
	}

	return &u, nil
}

func (r *userRepository) list(ctx context.Context, where string, args ...any) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE ` + where + `
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.CompanyID, &u.OfficeID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
			&u.IsActive, &u.IsVerified, &u.FirstLogin, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
