package schedule

import (
	"context"
	"time"
)

// WorkScheduleService defines business logic for schedule assignment.
type WorkScheduleService interface {
	// Assign replaces the user's schedule from the effective date forward.
	Assign(ctx context.Context, req AssignScheduleRequest) (ScheduleResponse, error)

	// ListForUser returns a user's schedule history.
	ListForUser(ctx context.Context, userID string) ([]ScheduleResponse, error)

	// ActiveSegments returns the expected working ranges for a user on a
	// date. Read path used by slot classification.
	ActiveSegments(ctx context.Context, userID string, date time.Time) ([]WorkScheduleSegment, error)

	// Delete removes a schedule (admin).
	Delete(ctx context.Context, id string) error
}
