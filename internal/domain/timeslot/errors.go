package timeslot

import "errors"

// Time register domain errors
var (
	// Double-open and double-close violate the one-open-slot invariant
	// and are rejected, never silently corrected.
	ErrSlotAlreadyOpen = errors.New("an open slot already exists for this day")
	ErrSlotNotOpen     = errors.New("slot is not open")

	ErrSlotNotFound     = errors.New("time register not found")
	ErrInvalidTimeRange = errors.New("hour end must be after hour start")
	ErrUnauthorized     = errors.New("unauthorized to access this time register")
)
