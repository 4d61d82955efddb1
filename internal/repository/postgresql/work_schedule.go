package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
)

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepository{db: db}
}

// Create implements schedule.WorkScheduleRepository. The caller is
// expected to run this inside a transaction so the schedule, its days and
// segments land atomically.
func (r *workScheduleRepository) Create(ctx context.Context, s schedule.UserWorkSchedule) (schedule.UserWorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_work_schedules (user_id, company_id, name, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.UserID, s.CompanyID, s.Name, s.EffectiveFrom, s.EffectiveTo,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return schedule.UserWorkSchedule{}, fmt.Errorf("failed to create work schedule: %w", err)
	}

	for di := range s.Days {
		day := &s.Days[di]
		day.ScheduleID = s.ID

		err := q.QueryRow(ctx,
			`INSERT INTO work_schedule_days (schedule_id, weekday) VALUES ($1, $2) RETURNING id`,
			day.ScheduleID, day.Weekday,
		).Scan(&day.ID)
		if err != nil {
			return schedule.UserWorkSchedule{}, fmt.Errorf("failed to create schedule day: %w", err)
		}

		for si := range day.Segments {
			seg := &day.Segments[si]
			seg.DayID = day.ID

			err := q.QueryRow(ctx,
				`INSERT INTO work_schedule_segments (day_id, start_time, end_time) VALUES ($1, $2, $3) RETURNING id`,
				seg.DayID, seg.StartTime, seg.EndTime,
			).Scan(&seg.ID)
			if err != nil {
				return schedule.UserWorkSchedule{}, fmt.Errorf("failed to create schedule segment: %w", err)
			}
		}
	}

	return s, nil
}

// GetByID implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) GetByID(ctx context.Context, id string, companyID string) (schedule.UserWorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, company_id, name, effective_from, effective_to, created_at, updated_at
		FROM user_work_schedules
		WHERE id = $1 AND company_id = $2
	`

	var s schedule.UserWorkSchedule
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.UserID, &s.CompanyID, &s.Name, &s.EffectiveFrom, &s.EffectiveTo, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.UserWorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.UserWorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	if err := r.loadDays(ctx, &s); err != nil {
		return schedule.UserWorkSchedule{}, err
	}

	return s, nil
}

// GetActiveForUser implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) GetActiveForUser(ctx context.Context, userID string, date time.Time) (*schedule.UserWorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, company_id, name, effective_from, effective_to, created_at, updated_at
		FROM user_work_schedules
		WHERE user_id = $1
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to >= $2)
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var s schedule.UserWorkSchedule
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&s.ID, &s.UserID, &s.CompanyID, &s.Name, &s.EffectiveFrom, &s.EffectiveTo, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active schedule: %w", err)
	}

	if err := r.loadDays(ctx, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// GetActiveSegments implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) GetActiveSegments(ctx context.Context, userID string, date time.Time) ([]schedule.WorkScheduleSegment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT seg.id, seg.day_id, seg.start_time, seg.end_time
		FROM work_schedule_segments seg
		JOIN work_schedule_days d ON d.id = seg.day_id
		JOIN user_work_schedules s ON s.id = d.schedule_id
		WHERE s.user_id = $1
		  AND d.weekday = $2
		  AND s.effective_from <= $3
		  AND (s.effective_to IS NULL OR s.effective_to >= $3)
		ORDER BY seg.start_time ASC
	`

	rows, err := q.Query(ctx, query, userID, int(date.Weekday()), date)
	if err != nil {
		return nil, fmt.Errorf("failed to query active segments: %w", err)
	}
	defer rows.Close()

	var segments []schedule.WorkScheduleSegment
	for rows.Next() {
		var seg schedule.WorkScheduleSegment
		if err := rows.Scan(&seg.ID, &seg.DayID, &seg.StartTime, &seg.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

// ListByUser implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) ListByUser(ctx context.Context, userID string, companyID string) ([]schedule.UserWorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, company_id, name, effective_from, effective_to, created_at, updated_at
		FROM user_work_schedules
		WHERE user_id = $1 AND company_id = $2
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.UserWorkSchedule
	for rows.Next() {
		var s schedule.UserWorkSchedule
		if err := rows.Scan(&s.ID, &s.UserID, &s.CompanyID, &s.Name, &s.EffectiveFrom, &s.EffectiveTo, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range schedules {
		if err := r.loadDays(ctx, &schedules[i]); err != nil {
			return nil, err
		}
	}

	return schedules, nil
}

// CapEffectiveTo implements schedule.WorkScheduleRepository.
func (r *workScheduleRepository) CapEffectiveTo(ctx context.Context, scheduleID string, until time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE user_work_schedules SET effective_to = $2, updated_at = NOW() WHERE id = $1`,
		scheduleID, until,
	)
	if err != nil {
		return fmt.Errorf("failed to cap schedule: %w", err)
	}
	return nil
}

// Delete implements schedule.WorkScheduleRepository. Days and segments
// cascade at the database level.
func (r *workScheduleRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM user_work_schedules WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete work schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

func (r *workScheduleRepository) loadDays(ctx context.Context, s *schedule.UserWorkSchedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.schedule_id, d.weekday, seg.id, seg.day_id, seg.start_time, seg.end_time
		FROM work_schedule_days d
		LEFT JOIN work_schedule_segments seg ON seg.day_id = d.id
		WHERE d.schedule_id = $1
		ORDER BY d.weekday ASC, seg.start_time ASC
	`

	rows, err := q.Query(ctx, query, s.ID)
	if err != nil {
		return fmt.Errorf("failed to query schedule days: %w", err)
	}
	defer rows.Close()

	dayIndex := make(map[string]int)
	s.Days = nil
	for rows.Next() {
		var (
			day              schedule.WorkScheduleDay
			segID, segDayID  *string
			segStart, segEnd *time.Time
		)
		if err := rows.Scan(&day.ID, &day.ScheduleID, &day.Weekday, &segID, &segDayID, &segStart, &segEnd); err != nil {
			return fmt.Errorf("failed to scan schedule day: %w", err)
		}

		idx, ok := dayIndex[day.ID]
		if !ok {
			s.Days = append(s.Days, day)
			idx = len(s.Days) - 1
			dayIndex[day.ID] = idx
		}
		if segID != nil {
			s.Days[idx].Segments = append(s.Days[idx].Segments, schedule.WorkScheduleSegment{
				ID:        *segID,
				DayID:     *segDayID,
				StartTime: *segStart,
				EndTime:   *segEnd,
			})
		}
	}
	return rows.Err()
}
