package timeslot

import (
	"time"

	"github.com/timedesk/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// TIME REGISTER DTOs
// ========================================

// SetTimeRequest is the clock-in/clock-out toggle: opens a slot when none
// is open for today, closes the open one otherwise.
type SetTimeRequest struct {
	Comments *string `json:"comments,omitempty"`
	Project  *string `json:"project,omitempty"`
	DeviceID *string `json:"deviceId,omitempty"`
}

func (r *SetTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Comments != nil && len(*r.Comments) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comments",
			Message: "comments must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetNewTimeRequest is a manual slot entry with explicit start and end.
type SetNewTimeRequest struct {
	HourStart string  `json:"hourStart"`
	HourEnd   string  `json:"hourEnd"`
	Comments  *string `json:"comments,omitempty"`
	Project   *string `json:"project,omitempty"`
	DeviceID  *string `json:"deviceId,omitempty"`
}

// ParsedRange returns the validated start/end timestamps. Call Validate first.
func (r *SetNewTimeRequest) ParsedRange() (start, end time.Time) {
	start, _ = time.Parse(time.RFC3339, r.HourStart)
	end, _ = time.Parse(time.RFC3339, r.HourEnd)
	return start, end
}

func (r *SetNewTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDateTime(r.HourStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "hourStart",
			Message: "hourStart must be an ISO8601 timestamp",
		})
	}
	end, okEnd := validator.IsValidDateTime(r.HourEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "hourEnd",
			Message: "hourEnd must be an ISO8601 timestamp",
		})
	}

	if okStart && okEnd && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "hourEnd",
			Message: "hourEnd must be after hourStart",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GetByDateRequest struct {
	Date string `json:"date"`
}

func (r *GetByDateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GetRangeRequest struct {
	DateStart string  `json:"dateStart"`
	DateEnd   string  `json:"dateEnd"`
	UserID    *string `json:"userId,omitempty"` // admin only; defaults to caller
}

func (r *GetRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.DateStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "dateStart",
			Message: "dateStart must be YYYY-MM-DD",
		})
	}
	end, okEnd := validator.IsValidDate(r.DateEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "dateEnd",
			Message: "dateEnd must be YYYY-MM-DD",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "dateEnd",
			Message: "dateEnd must not be before dateStart",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// JustifySlotRequest attaches an explanation to a slot with a pending
// justification status.
type JustifySlotRequest struct {
	ID           string  `json:"id"`
	Comments     string  `json:"comments"`
	ScheduleType *string `json:"scheduleType,omitempty"`
}

func (r *JustifySlotRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if validator.IsEmpty(r.Comments) {
		errs = append(errs, validator.ValidationError{
			Field:   "comments",
			Message: "comments is required",
		})
	}
	if r.ScheduleType != nil {
		valid := []string{
			string(ScheduleTypeNormal), string(ScheduleTypeExtraBefore),
			string(ScheduleTypeExtraAfter), string(ScheduleTypeLateEntry),
			string(ScheduleTypeEarlyExit), string(ScheduleTypeManual),
		}
		if !validator.IsInSlice(*r.ScheduleType, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "scheduleType",
				Message: "unknown schedule type",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type TimeRegisterResponse struct {
	ID                  string  `json:"id"`
	UserID              string  `json:"user_id"`
	UserName            *string `json:"user_name,omitempty"`
	Date                string  `json:"date"`
	HourStart           string  `json:"hour_start"`
	HourEnd             string  `json:"hour_end"`
	Slot                int     `json:"slot"`
	Status              string  `json:"status"`
	TotalSlotTime       string  `json:"total_slot_time"`
	TotalTime           string  `json:"total_time"`
	Comments            *string `json:"comments,omitempty"`
	Project             *string `json:"project,omitempty"`
	ScheduleType        string  `json:"schedule_type"`
	JustificationStatus string  `json:"justification_status"`
}

// SetTimeResponse reports which side of the toggle ran.
type SetTimeResponse struct {
	Action   string               `json:"action"` // "opened" or "closed"
	Register TimeRegisterResponse `json:"register"`
}

type DayResponse struct {
	Date      string                 `json:"date"`
	Registers []TimeRegisterResponse `json:"registers"`
	TotalTime string                 `json:"total_time"`
}

type RangeResponse struct {
	DateStart string        `json:"date_start"`
	DateEnd   string        `json:"date_end"`
	Days      []DayResponse `json:"days"`
	TotalTime string        `json:"total_time"`
}

// NewTimeRegisterResponse maps the entity to its API shape.
func NewTimeRegisterResponse(t TimeRegister) TimeRegisterResponse {
	return TimeRegisterResponse{
		ID:                  t.ID,
		UserID:              t.UserID,
		UserName:            t.UserName,
		Date:                t.Date.Format("2006-01-02"),
		HourStart:           t.HourStart.Format(time.RFC3339),
		HourEnd:             t.HourEnd.Format(time.RFC3339),
		Slot:                t.Slot,
		Status:              string(t.Status),
		TotalSlotTime:       t.TotalSlotTime,
		TotalTime:           t.TotalTime,
		Comments:            t.Comments,
		Project:             t.Project,
		ScheduleType:        string(t.ScheduleType),
		JustificationStatus: string(t.JustificationStatus),
	}
}
