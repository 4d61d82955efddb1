package schedule

import "time"

// UserWorkSchedule is a user's assigned weekly schedule, valid over an
// effective date range. At most one schedule is active for a user on any
// given date.
type UserWorkSchedule struct {
	ID            string
	UserID        string
	CompanyID     string
	Name          string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Days []WorkScheduleDay
}

// WorkScheduleDay groups the segments of one weekday. Weekday follows
// time.Weekday (Sunday = 0).
type WorkScheduleDay struct {
	ID         string
	ScheduleID string
	Weekday    int

	Segments []WorkScheduleSegment
}

// WorkScheduleSegment is one contiguous expected working range within a
// day, as wall-clock times.
type WorkScheduleSegment struct {
	ID        string
	DayID     string
	StartTime time.Time // clock time, date part ignored
	EndTime   time.Time
}
