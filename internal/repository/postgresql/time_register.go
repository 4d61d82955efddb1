package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
)

type timeRegisterRepository struct {
	db *database.DB
}

func NewTimeRegisterRepository(db *database.DB) timeslot.TimeRegisterRepository {
	return &timeRegisterRepository{db: db}
}

const timeRegisterColumns = `
	id, user_id, company_id, date, hour_start, hour_end, slot, status,
	total_slot_time, total_time, comments, project, device_id,
	schedule_type, justification_status, created_at, updated_at`

func scanTimeRegister(row pgx.Row) (timeslot.TimeRegister, error) {
	var t timeslot.TimeRegister
	err := row.Scan(
		&t.ID, &t.UserID, &t.CompanyID, &t.Date, &t.HourStart, &t.HourEnd,
		&t.Slot, &t.Status, &t.TotalSlotTime, &t.TotalTime,
		&t.Comments, &t.Project, &t.DeviceID,
		&t.ScheduleType, &t.JustificationStatus, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) Create(ctx context.Context, reg timeslot.TimeRegister) (timeslot.TimeRegister, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_registers (
			user_id, company_id, date, hour_start, hour_end, slot, status,
			total_slot_time, total_time, comments, project, device_id,
			schedule_type, justification_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		reg.UserID,
		reg.CompanyID,
		reg.Date,
		reg.HourStart,
		reg.HourEnd,
		reg.Slot,
		reg.Status,
		reg.TotalSlotTime,
		reg.TotalTime,
		reg.Comments,
		reg.Project,
		reg.DeviceID,
		reg.ScheduleType,
		reg.JustificationStatus,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)

	if err != nil {
		return timeslot.TimeRegister{}, fmt.Errorf("failed to create time register: %w", err)
	}

	return reg, nil
}

// GetByID implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) GetByID(ctx context.Context, id string, companyID string) (timeslot.TimeRegister, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timeRegisterColumns + `
		FROM time_registers
		WHERE id = $1 AND company_id = $2`

	t, err := scanTimeRegister(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeslot.TimeRegister{}, timeslot.ErrSlotNotFound
		}
		return timeslot.TimeRegister{}, fmt.Errorf("failed to get time register by ID: %w", err)
	}

	return t, nil
}

// GetOpenSlot implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) GetOpenSlot(ctx context.Context, userID string, date time.Time) (*timeslot.TimeRegister, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timeRegisterColumns + `
		FROM time_registers
		WHERE user_id = $1 AND date = $2 AND status = $3
		LIMIT 1`

	t, err := scanTimeRegister(q.QueryRow(ctx, query, userID, date, timeslot.SlotStatusOpen))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no open slot
		}
		return nil, fmt.Errorf("failed to get open slot: %w", err)
	}

	return &t, nil
}

// GetLastSlot implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) GetLastSlot(ctx context.Context, userID string, date time.Time) (*timeslot.TimeRegister, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timeRegisterColumns + `
		FROM time_registers
		WHERE user_id = $1 AND date = $2
		ORDER BY slot DESC
		LIMIT 1`

	t, err := scanTimeRegister(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last slot: %w", err)
	}

	return &t, nil
}

// CloseSlot implements timeslot.TimeRegisterRepository. The WHERE clause
// only matches rows still OPEN, so concurrent double-closes fail loudly
// instead of corrupting the running totals.
func (r *timeRegisterRepository) CloseSlot(ctx context.Context, id string, hourEnd time.Time, totalSlotTime, totalTime string, status timeslot.SlotStatus) (timeslot.TimeRegister, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_registers
		SET hour_end = $2, status = $3, total_slot_time = $4, total_time = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
		RETURNING` + timeRegisterColumns

	t, err := scanTimeRegister(q.QueryRow(ctx, query, id, hourEnd, status, totalSlotTime, totalTime, timeslot.SlotStatusOpen))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeslot.TimeRegister{}, timeslot.ErrSlotNotOpen
		}
		return timeslot.TimeRegister{}, fmt.Errorf("failed to close slot: %w", err)
	}

	return t, nil
}

// ListByDate implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]timeslot.TimeRegister, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timeRegisterColumns + `
		FROM time_registers
		WHERE user_id = $1 AND date = $2
		ORDER BY slot ASC`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query time registers: %w", err)
	}
	defer rows.Close()

	return collectTimeRegisters(rows)
}

// ListByRange implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) ListByRange(ctx context.Context, userID string, dateStart, dateEnd time.Time) ([]timeslot.TimeRegister, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timeRegisterColumns + `
		FROM time_registers
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, slot ASC`

	rows, err := q.Query(ctx, query, userID, dateStart, dateEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query time registers: %w", err)
	}
	defer rows.Close()

	return collectTimeRegisters(rows)
}

// ListOpenByDate implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) ListOpenByDate(ctx context.Context, date time.Time) ([]timeslot.TimeRegister, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timeRegisterColumns + `
		FROM time_registers
		WHERE date = $1 AND status = $2
		ORDER BY user_id ASC`

	rows, err := q.Query(ctx, query, date, timeslot.SlotStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to query open slots: %w", err)
	}
	defer rows.Close()

	return collectTimeRegisters(rows)
}

// HasSlotForDate implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) HasSlotForDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM time_registers WHERE user_id = $1 AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slot existence: %w", err)
	}

	return exists, nil
}

// UpdateJustification implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) UpdateJustification(ctx context.Context, id string, comments string, scheduleType timeslot.ScheduleType, status timeslot.JustificationStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_registers
		SET comments = $2, schedule_type = $3, justification_status = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, comments, scheduleType, status)
	if err != nil {
		return fmt.Errorf("failed to update justification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeslot.ErrSlotNotFound
	}

	return nil
}

// Delete implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_registers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete time register: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeslot.ErrSlotNotFound
	}

	return nil
}

// BackfillStatuses implements timeslot.TimeRegisterRepository.
func (r *timeRegisterRepository) BackfillStatuses(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	// An OPEN row with distinct timestamps was closed without its status
	// being recorded; the inverse means a close was rolled back halfway.
	query := `
		UPDATE time_registers
		SET status = CASE WHEN hour_start = hour_end THEN 'OPEN' ELSE 'CLOSED' END,
		    updated_at = NOW()
		WHERE (status = 'OPEN' AND hour_start <> hour_end)
		   OR (status IN ('CLOSED', 'CLOSED_AUTOMATIC') AND hour_start = hour_end)
	`

	tag, err := q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill statuses: %w", err)
	}

	return tag.RowsAffected(), nil
}

func collectTimeRegisters(rows pgx.Rows) ([]timeslot.TimeRegister, error) {
	var registers []timeslot.TimeRegister
	for rows.Next() {
		t, err := scanTimeRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time register: %w", err)
		}
		registers = append(registers, t)
	}
	return registers, rows.Err()
}
