package cron

import (
	"context"
	"time"

	"github.com/timedesk/timeclock-backend-go/internal/service/rollover"
)

// RolloverJobs wires the daily rollover into the scheduler.
type RolloverJobs struct {
	rolloverSvc rollover.Service
	location    *time.Location
}

func NewRolloverJobs(rolloverSvc rollover.Service, location *time.Location) *RolloverJobs {
	return &RolloverJobs{
		rolloverSvc: rolloverSvc,
		location:    location,
	}
}

func (j *RolloverJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("daily_rollover", interval, j.DailyRollover)
}

// DailyRollover runs the rollover during the first hour of the day. The
// run itself is idempotent, so firing more than once within the hour is
// harmless.
func (j *RolloverJobs) DailyRollover(ctx context.Context) error {
	now := time.Now()
	if now.In(j.location).Hour() != 0 {
		return nil
	}

	_, err := j.rolloverSvc.Run(ctx, now)
	return err
}
