package timeslot

import (
	"context"
	"time"
)

// TimeRegisterRepository defines data access for time register slots.
// Methods take companyID where a caller-facing lookup must not cross
// tenants; rollover methods operate across companies.
type TimeRegisterRepository interface {
	// Create inserts a new slot row.
	Create(ctx context.Context, reg TimeRegister) (TimeRegister, error)

	// GetByID retrieves a slot with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (TimeRegister, error)

	// GetOpenSlot returns the OPEN slot for (user, date), or nil if none.
	GetOpenSlot(ctx context.Context, userID string, date time.Time) (*TimeRegister, error)

	// GetLastSlot returns the highest-numbered slot for (user, date), or
	// nil if the day has no slots yet.
	GetLastSlot(ctx context.Context, userID string, date time.Time) (*TimeRegister, error)

	// CloseSlot performs the conditional close: it only matches rows whose
	// status is still OPEN, so a concurrent double-close loses the race
	// and gets ErrSlotNotOpen.
	CloseSlot(ctx context.Context, id string, hourEnd time.Time, totalSlotTime, totalTime string, status SlotStatus) (TimeRegister, error)

	// ListByDate returns all of a user's slots for one day, ordered by slot.
	ListByDate(ctx context.Context, userID string, date time.Time) ([]TimeRegister, error)

	// ListByRange returns a user's slots between two dates inclusive,
	// ordered by date then slot.
	ListByRange(ctx context.Context, userID string, dateStart, dateEnd time.Time) ([]TimeRegister, error)

	// ListOpenByDate returns every OPEN slot dated on the given day across
	// all companies. Used by the daily rollover.
	ListOpenByDate(ctx context.Context, date time.Time) ([]TimeRegister, error)

	// HasSlotForDate reports whether the user already has any slot on the
	// date. The rollover uses it as its idempotency check.
	HasSlotForDate(ctx context.Context, userID string, date time.Time) (bool, error)

	// UpdateJustification sets comments, schedule type and justification
	// status on an existing slot.
	UpdateJustification(ctx context.Context, id string, comments string, scheduleType ScheduleType, status JustificationStatus) error

	// Delete removes a slot. Admin action only.
	Delete(ctx context.Context, id string, companyID string) error

	// BackfillStatuses recomputes status from hour_start/hour_end equality
	// for rows whose stored status disagrees with the timestamps. Returns
	// the number of rows fixed.
	BackfillStatuses(ctx context.Context) (int64, error)
}
