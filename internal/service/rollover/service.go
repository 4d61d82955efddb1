package rollover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
	"github.com/timedesk/timeclock-backend-go/internal/repository/postgresql"
)

// Stats summarizes one rollover run.
type Stats struct {
	Closed   int
	Reopened int
	Skipped  int
	Failed   int
}

// Service closes the previous day's forgotten open slots and reopens a
// fresh slot on the new day, so a shift crossing midnight keeps
// accumulating without inflating the old day's totals.
type Service interface {
	// Run processes every open slot dated the day before now. It is
	// idempotent: a second run on the same day finds nothing to close,
	// and a user who already has a slot today is not reopened again.
	Run(ctx context.Context, now time.Time) (Stats, error)
}

type RolloverServiceImpl struct {
	db *database.DB
	timeslot.TimeRegisterRepository
	location *time.Location
}

func NewRolloverService(db *database.DB, registerRepo timeslot.TimeRegisterRepository, location *time.Location) Service {
	return &RolloverServiceImpl{
		db:                     db,
		TimeRegisterRepository: registerRepo,
		location:               location,
	}
}

func (s *RolloverServiceImpl) dateOf(t time.Time) time.Time {
	local := t.In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Run implements Service.
func (s *RolloverServiceImpl) Run(ctx context.Context, now time.Time) (Stats, error) {
	local := now.In(s.location)
	today := s.dateOf(local)
	yesterday := today.AddDate(0, 0, -1)

	// End of yesterday and start of today as wall-clock instants.
	endOfYesterday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location).Add(-1 * time.Second)
	startOfToday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)

	openSlots, err := s.TimeRegisterRepository.ListOpenByDate(ctx, yesterday)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list open slots: %w", err)
	}

	var stats Stats
	for _, reg := range openSlots {
		if err := s.rollOne(ctx, reg, today, endOfYesterday, startOfToday, &stats); err != nil {
			stats.Failed++
			slog.Error("Rollover failed for user",
				"user_id", reg.UserID,
				"register_id", reg.ID,
				"error", err)
		}
	}

	slog.Info("Daily rollover finished",
		"date", yesterday.Format("2006-01-02"),
		"closed", stats.Closed,
		"reopened", stats.Reopened,
		"skipped", stats.Skipped,
		"failed", stats.Failed)

	return stats, nil
}

// rollOne closes one leftover slot and reopens the user on the new day,
// both inside a single transaction so a crash cannot close without
// reopening.
func (s *RolloverServiceImpl) rollOne(ctx context.Context, reg timeslot.TimeRegister, today, endOfYesterday, startOfToday time.Time, stats *Stats) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		slotTime := timeslot.DurationBetween(reg.HourStart, endOfYesterday)

		registers, err := s.TimeRegisterRepository.ListByDate(txCtx, reg.UserID, reg.Date)
		if err != nil {
			return fmt.Errorf("failed to list day slots: %w", err)
		}
		durations := []string{slotTime}
		for _, r := range registers {
			if r.ID == reg.ID || r.IsOpen() {
				continue
			}
			durations = append(durations, r.TotalSlotTime)
		}
		total, err := timeslot.SumDurations(durations)
		if err != nil {
			return err
		}

		_, err = s.TimeRegisterRepository.CloseSlot(txCtx, reg.ID, endOfYesterday, slotTime, total, timeslot.SlotStatusClosedAutomatic)
		if err != nil {
			// A concurrent run or a manual close got here first. The
			// reopen check below still applies.
			if errors.Is(err, timeslot.ErrSlotNotOpen) {
				stats.Skipped++
			} else {
				return err
			}
		} else {
			stats.Closed++
		}

		hasToday, err := s.TimeRegisterRepository.HasSlotForDate(txCtx, reg.UserID, today)
		if err != nil {
			return fmt.Errorf("failed to check today's slots: %w", err)
		}
		if hasToday {
			stats.Skipped++
			return nil
		}

		_, err = s.TimeRegisterRepository.Create(txCtx, timeslot.TimeRegister{
			UserID:              reg.UserID,
			CompanyID:           reg.CompanyID,
			Date:                today,
			HourStart:           startOfToday,
			HourEnd:             startOfToday,
			Slot:                1,
			Status:              timeslot.SlotStatusOpen,
			TotalSlotTime:       timeslot.ZeroDuration,
			TotalTime:           timeslot.ZeroDuration,
			Comments:            reg.Comments,
			Project:             reg.Project,
			DeviceID:            reg.DeviceID,
			ScheduleType:        timeslot.ScheduleTypeNormal,
			JustificationStatus: timeslot.JustificationCompleted,
		})
		if err != nil {
			return fmt.Errorf("failed to reopen slot: %w", err)
		}
		stats.Reopened++
		return nil
	})
}
