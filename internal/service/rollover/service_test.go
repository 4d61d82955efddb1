package rollover

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
	"github.com/timedesk/timeclock-backend-go/internal/repository/postgresql"
	"github.com/timedesk/timeclock-backend-go/migrations"
)

var testDB *database.DB

func rolloverTestInit(t *testing.T) {
	t.Helper()
	if testDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, database.Migrate(dsn, migrations.FS))

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
}

func truncateRolloverTables(t *testing.T, ctx context.Context) {
	t.Helper()
	for _, table := range []string{"time_registers", "users", "companies"} {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createRolloverTestUser(t *testing.T, ctx context.Context) (userID, companyID string) {
	t.Helper()
	err := testDB.QueryRow(ctx, `
		INSERT INTO companies (name) VALUES ('Test Company') RETURNING id
	`).Scan(&companyID)
	require.NoError(t, err)

	err = testDB.QueryRow(ctx, `
		INSERT INTO users (company_id, email, password_hash, name, role)
		VALUES ($1, 'worker@test.local', 'x', 'Worker', 'employee')
		RETURNING id
	`, companyID).Scan(&userID)
	require.NoError(t, err)
	return userID, companyID
}

func TestRolloverClosesAndReopens(t *testing.T) {
	rolloverTestInit(t)
	ctx := context.Background()
	truncateRolloverTables(t, ctx)
	userID, companyID := createRolloverTestUser(t, ctx)

	repo := postgresql.NewTimeRegisterRepository(testDB)
	svc := NewRolloverService(testDB, repo, time.UTC)

	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	hourStart := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	open, err := repo.Create(ctx, timeslot.TimeRegister{
		UserID:              userID,
		CompanyID:           companyID,
		Date:                yesterday,
		HourStart:           hourStart,
		HourEnd:             hourStart,
		Slot:                1,
		Status:              timeslot.SlotStatusOpen,
		TotalSlotTime:       timeslot.ZeroDuration,
		TotalTime:           timeslot.ZeroDuration,
		ScheduleType:        timeslot.ScheduleTypeNormal,
		JustificationStatus: timeslot.JustificationCompleted,
	})
	require.NoError(t, err)

	stats, err := svc.Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Closed)
	assert.Equal(t, 1, stats.Reopened)
	assert.Equal(t, 0, stats.Failed)

	closed, err := repo.GetByID(ctx, open.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, timeslot.SlotStatusClosedAutomatic, closed.Status)
	assert.Equal(t, "01:59:59", closed.TotalSlotTime)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC), closed.HourEnd.UTC())

	todaySlots, err := repo.ListByDate(ctx, userID, today)
	require.NoError(t, err)
	require.Len(t, todaySlots, 1)
	assert.Equal(t, 1, todaySlots[0].Slot)
	assert.Equal(t, timeslot.SlotStatusOpen, todaySlots[0].Status)
	assert.Equal(t, today, todaySlots[0].HourStart.UTC())
}

func TestRolloverIsIdempotent(t *testing.T) {
	rolloverTestInit(t)
	ctx := context.Background()
	truncateRolloverTables(t, ctx)
	userID, companyID := createRolloverTestUser(t, ctx)

	repo := postgresql.NewTimeRegisterRepository(testDB)
	svc := NewRolloverService(testDB, repo, time.UTC)

	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	hourStart := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, timeslot.TimeRegister{
		UserID:              userID,
		CompanyID:           companyID,
		Date:                yesterday,
		HourStart:           hourStart,
		HourEnd:             hourStart,
		Slot:                1,
		Status:              timeslot.SlotStatusOpen,
		TotalSlotTime:       timeslot.ZeroDuration,
		TotalTime:           timeslot.ZeroDuration,
		ScheduleType:        timeslot.ScheduleTypeNormal,
		JustificationStatus: timeslot.JustificationCompleted,
	})
	require.NoError(t, err)

	_, err = svc.Run(ctx, now)
	require.NoError(t, err)

	stats, err := svc.Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	todaySlots, err := repo.ListByDate(ctx, userID, today)
	require.NoError(t, err)
	assert.Len(t, todaySlots, 1)
}

func TestRolloverSkipsReopenWhenTodayExists(t *testing.T) {
	rolloverTestInit(t)
	ctx := context.Background()
	truncateRolloverTables(t, ctx)
	userID, companyID := createRolloverTestUser(t, ctx)

	repo := postgresql.NewTimeRegisterRepository(testDB)
	svc := NewRolloverService(testDB, repo, time.UTC)

	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	hourStart := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, timeslot.TimeRegister{
		UserID:              userID,
		CompanyID:           companyID,
		Date:                yesterday,
		HourStart:           hourStart,
		HourEnd:             hourStart,
		Slot:                1,
		Status:              timeslot.SlotStatusOpen,
		TotalSlotTime:       timeslot.ZeroDuration,
		TotalTime:           timeslot.ZeroDuration,
		ScheduleType:        timeslot.ScheduleTypeNormal,
		JustificationStatus: timeslot.JustificationCompleted,
	})
	require.NoError(t, err)

	// The user already clocked in today before the job ran.
	morning := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
	_, err = repo.Create(ctx, timeslot.TimeRegister{
		UserID:              userID,
		CompanyID:           companyID,
		Date:                today,
		HourStart:           morning,
		HourEnd:             morning,
		Slot:                1,
		Status:              timeslot.SlotStatusOpen,
		TotalSlotTime:       timeslot.ZeroDuration,
		TotalTime:           timeslot.ZeroDuration,
		ScheduleType:        timeslot.ScheduleTypeNormal,
		JustificationStatus: timeslot.JustificationCompleted,
	})
	require.NoError(t, err)

	stats, err := svc.Run(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Closed)
	assert.Equal(t, 0, stats.Reopened)
	assert.Equal(t, 1, stats.Skipped)

	todaySlots, err := repo.ListByDate(ctx, userID, today)
	require.NoError(t, err)
	assert.Len(t, todaySlots, 1)
}
