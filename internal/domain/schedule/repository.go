package schedule

import (
	"context"
	"time"
)

// WorkScheduleRepository defines data access for user work schedules.
type WorkScheduleRepository interface {
	// Create inserts a schedule with its days and segments.
	Create(ctx context.Context, s UserWorkSchedule) (UserWorkSchedule, error)

	// GetByID loads a schedule including days and segments.
	GetByID(ctx context.Context, id string, companyID string) (UserWorkSchedule, error)

	// GetActiveForUser returns the schedule whose effective range covers
	// the date, or nil when the user has none.
	GetActiveForUser(ctx context.Context, userID string, date time.Time) (*UserWorkSchedule, error)

	// GetActiveSegments returns the active schedule's segments for the
	// weekday of the given date, ordered by start time. Empty when no
	// schedule applies.
	GetActiveSegments(ctx context.Context, userID string, date time.Time) ([]WorkScheduleSegment, error)

	// ListByUser returns all schedules assigned to a user, newest first.
	ListByUser(ctx context.Context, userID string, companyID string) ([]UserWorkSchedule, error)

	// CapEffectiveTo ends an open-ended schedule the day before a new one
	// takes over.
	CapEffectiveTo(ctx context.Context, scheduleID string, until time.Time) error

	// Delete removes a schedule with its days and segments.
	Delete(ctx context.Context, id string, companyID string) error
}
