package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("work schedule not found")
	ErrScheduleOverlap    = errors.New("an active schedule already covers this date range")
	ErrInvalidSegment     = errors.New("segment end must be after segment start")
	ErrInvalidEffectiveTo = errors.New("effective end date must not be before start date")
)
