package timeslot

import (
	"time"
)

type SlotStatus string

const (
	SlotStatusOpen            SlotStatus = "OPEN"
	SlotStatusClosed          SlotStatus = "CLOSED"
	SlotStatusClosedAutomatic SlotStatus = "CLOSED_AUTOMATIC"
)

// ScheduleType classifies how a slot relates to the user's assigned
// weekly schedule.
type ScheduleType string

const (
	ScheduleTypeNormal      ScheduleType = "NORMAL"
	ScheduleTypeExtraBefore ScheduleType = "EXTRA_BEFORE"
	ScheduleTypeExtraAfter  ScheduleType = "EXTRA_AFTER"
	ScheduleTypeLateEntry   ScheduleType = "LATE_ENTRY"
	ScheduleTypeEarlyExit   ScheduleType = "EARLY_EXIT"
	ScheduleTypeManual      ScheduleType = "MANUAL"
)

type JustificationStatus string

const (
	JustificationPending   JustificationStatus = "PENDING"
	JustificationCompleted JustificationStatus = "COMPLETED"
)

// TimeRegister is one contiguous open-to-close work interval for a user on
// a given calendar date. While the slot is OPEN, HourStart == HourEnd.
type TimeRegister struct {
	ID        string
	UserID    string
	CompanyID string
	Date      time.Time
	HourStart time.Time
	HourEnd   time.Time

	// Slot is the 1-based sequence number within the user-day.
	Slot   int
	Status SlotStatus

	// TotalSlotTime is this slot's duration, TotalTime the running
	// cumulative duration for the day. Both HH:MM:SS, hours unbounded.
	TotalSlotTime string
	TotalTime     string

	Comments *string
	Project  *string
	DeviceID *string

	ScheduleType        ScheduleType
	JustificationStatus JustificationStatus

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName *string
}

// IsOpen reports whether the slot is still accumulating time.
func (t *TimeRegister) IsOpen() bool {
	return t.Status == SlotStatusOpen
}
