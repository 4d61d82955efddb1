package timeslot

import (
	"context"
	"time"
)

// TimeRegisterService defines business logic for the slot lifecycle.
type TimeRegisterService interface {
	// SetTime is the clock toggle: opens a new slot when the caller has no
	// open slot today, closes the open one otherwise.
	SetTime(ctx context.Context, req SetTimeRequest) (SetTimeResponse, error)

	// SetNewTime records a manual entry with explicit start/end. The slot
	// is created already closed, marked MANUAL with a pending
	// justification.
	SetNewTime(ctx context.Context, req SetNewTimeRequest) (TimeRegisterResponse, error)

	// OpenSlot opens a slot for the user at the given instant. Fails with
	// ErrSlotAlreadyOpen when one is already open for that day.
	OpenSlot(ctx context.Context, userID, companyID string, ts time.Time, comments, project, deviceID *string) (TimeRegister, error)

	// CloseSlot closes an open slot at the given instant, computing slot
	// and cumulative durations. Fails with ErrSlotNotOpen otherwise.
	CloseSlot(ctx context.Context, slotID string, ts time.Time, status SlotStatus) (TimeRegister, error)

	// GetByDate returns the caller's slots for one day with the day total.
	GetByDate(ctx context.Context, req GetByDateRequest) (DayResponse, error)

	// GetRange returns per-day listings and a range total.
	GetRange(ctx context.Context, req GetRangeRequest) (RangeResponse, error)

	// Justify updates a slot's justification comments and classification.
	Justify(ctx context.Context, req JustifySlotRequest) (TimeRegisterResponse, error)

	// Delete removes a slot (admin).
	Delete(ctx context.Context, id string) error
}
