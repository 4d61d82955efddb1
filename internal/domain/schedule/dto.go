package schedule

import (
	"time"

	"github.com/timedesk/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// WORK SCHEDULE DTOs
// ========================================

type SegmentInput struct {
	StartTime string `json:"start_time"` // "HH:MM" or "HH:MM:SS"
	EndTime   string `json:"end_time"`
}

type DayInput struct {
	Weekday  int            `json:"weekday"` // 0 = Sunday .. 6 = Saturday
	Segments []SegmentInput `json:"segments"`
}

// AssignScheduleRequest replaces the user's schedule from the effective
// date forward. The previous schedule, if any, is capped at the day before.
type AssignScheduleRequest struct {
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	EffectiveFrom string     `json:"effective_from"`
	EffectiveTo   *string    `json:"effective_to,omitempty"`
	Days          []DayInput `json:"days"`
}

func (r *AssignScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	from, okFrom := validator.IsValidDate(r.EffectiveFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be YYYY-MM-DD",
		})
	}
	if r.EffectiveTo != nil {
		to, okTo := validator.IsValidDate(*r.EffectiveTo)
		if !okTo {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be YYYY-MM-DD",
			})
		} else if okFrom && to.Before(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must not be before effective_from",
			})
		}
	}

	if len(r.Days) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "at least one day is required",
		})
	}
	for _, day := range r.Days {
		if day.Weekday < 0 || day.Weekday > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "weekday must be between 0 and 6",
			})
			continue
		}
		for _, seg := range day.Segments {
			start, okStart := validator.IsValidClockTime(seg.StartTime)
			end, okEnd := validator.IsValidClockTime(seg.EndTime)
			if !okStart || !okEnd {
				errs = append(errs, validator.ValidationError{
					Field:   "segments",
					Message: "segment times must be HH:MM or HH:MM:SS",
				})
				continue
			}
			if !end.After(start) {
				errs = append(errs, validator.ValidationError{
					Field:   "segments",
					Message: "segment end must be after segment start",
				})
			}
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

type SegmentResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DayResponse struct {
	Weekday  int               `json:"weekday"`
	Segments []SegmentResponse `json:"segments"`
}

type ScheduleResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Name          string        `json:"name"`
	EffectiveFrom string        `json:"effective_from"`
	EffectiveTo   *string       `json:"effective_to,omitempty"`
	Days          []DayResponse `json:"days"`
}

func NewScheduleResponse(s UserWorkSchedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		Name:          s.Name,
		EffectiveFrom: s.EffectiveFrom.Format("2006-01-02"),
	}
	if s.EffectiveTo != nil {
		to := s.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	for _, day := range s.Days {
		dr := DayResponse{Weekday: day.Weekday}
		for _, seg := range day.Segments {
			dr.Segments = append(dr.Segments, SegmentResponse{
				ID:        seg.ID,
				StartTime: seg.StartTime.Format("15:04:05"),
				EndTime:   seg.EndTime.Format("15:04:05"),
			})
		}
		resp.Days = append(resp.Days, dr)
	}
	return resp
}

// ParsedEffectiveRange returns validated dates. Call Validate first.
func (r *AssignScheduleRequest) ParsedEffectiveRange() (from time.Time, to *time.Time) {
	from, _ = time.Parse("2006-01-02", r.EffectiveFrom)
	if r.EffectiveTo != nil {
		t, _ := time.Parse("2006-01-02", *r.EffectiveTo)
		to = &t
	}
	return from, to
}
