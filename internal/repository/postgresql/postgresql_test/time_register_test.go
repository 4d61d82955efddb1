package postgresql_test

import (
	"context"
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

func testInit(t *testing.T) {
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

func setupTestData(t *testing.T) (userID, companyID string) {
	t.Helper()
	ctx := context.Background()

	for _, table := range []string{"time_registers", "users", "companies"} {
		_, err := testDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}

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

func openTestSlot(t *testing.T, repo timeslot.TimeRegisterRepository, userID, companyID string, date, start time.Time, slot int) timeslot.TimeRegister {
	t.Helper()
	reg, err := repo.Create(context.Background(), timeslot.TimeRegister{
		UserID:              userID,
		CompanyID:           companyID,
		Date:                date,
		HourStart:           start,
		HourEnd:             start,
		Slot:                slot,
		Status:              timeslot.SlotStatusOpen,
		TotalSlotTime:       timeslot.ZeroDuration,
		TotalTime:           timeslot.ZeroDuration,
		ScheduleType:        timeslot.ScheduleTypeNormal,
		JustificationStatus: timeslot.JustificationCompleted,
	})
	require.NoError(t, err)
	return reg
}

func TestCloseSlotOnlyClosesOnce(t *testing.T) {
	testInit(t)
	userID, companyID := setupTestData(t)
	ctx := context.Background()

	repo := postgresql.NewTimeRegisterRepository(testDB)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reg := openTestSlot(t, repo, userID, companyID, date, start, 1)

	end := start.Add(4 * time.Hour)
	closed, err := repo.CloseSlot(ctx, reg.ID, end, "04:00:00", "04:00:00", timeslot.SlotStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, timeslot.SlotStatusClosed, closed.Status)
	assert.Equal(t, "04:00:00", closed.TotalSlotTime)

	// The row is no longer OPEN, so a second close must not match.
	_, err = repo.CloseSlot(ctx, reg.ID, end.Add(time.Hour), "05:00:00", "05:00:00", timeslot.SlotStatusClosed)
	assert.ErrorIs(t, err, timeslot.ErrSlotNotOpen)

	after, err := repo.GetByID(ctx, reg.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, "04:00:00", after.TotalSlotTime)
}

func TestGetOpenSlot(t *testing.T) {
	testInit(t)
	userID, companyID := setupTestData(t)
	ctx := context.Background()

	repo := postgresql.NewTimeRegisterRepository(testDB)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	open, err := repo.GetOpenSlot(ctx, userID, date)
	require.NoError(t, err)
	assert.Nil(t, open)

	reg := openTestSlot(t, repo, userID, companyID, date, date.Add(9*time.Hour), 1)

	open, err = repo.GetOpenSlot(ctx, userID, date)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, reg.ID, open.ID)
}

func TestOnlyOneOpenSlotPerDay(t *testing.T) {
	testInit(t)
	userID, companyID := setupTestData(t)
	ctx := context.Background()

	repo := postgresql.NewTimeRegisterRepository(testDB)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	openTestSlot(t, repo, userID, companyID, date, date.Add(9*time.Hour), 1)

	_, err := repo.Create(ctx, timeslot.TimeRegister{
		UserID:              userID,
		CompanyID:           companyID,
		Date:                date,
		HourStart:           date.Add(10 * time.Hour),
		HourEnd:             date.Add(10 * time.Hour),
		Slot:                2,
		Status:              timeslot.SlotStatusOpen,
		TotalSlotTime:       timeslot.ZeroDuration,
		TotalTime:           timeslot.ZeroDuration,
		ScheduleType:        timeslot.ScheduleTypeNormal,
		JustificationStatus: timeslot.JustificationCompleted,
	})
	assert.Error(t, err)
}

func TestBackfillStatuses(t *testing.T) {
	testInit(t)
	userID, companyID := setupTestData(t)
	ctx := context.Background()

	repo := postgresql.NewTimeRegisterRepository(testDB)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	start := date.Add(9 * time.Hour)

	// An OPEN row whose timestamps say it was closed.
	reg := openTestSlot(t, repo, userID, companyID, date, start, 1)
	_, err := testDB.Exec(ctx,
		`UPDATE time_registers SET hour_end = $2 WHERE id = $1`,
		reg.ID, start.Add(2*time.Hour))
	require.NoError(t, err)

	affected, err := repo.BackfillStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	after, err := repo.GetByID(ctx, reg.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, timeslot.SlotStatusClosed, after.Status)

	// A second pass finds nothing left to fix.
	affected, err = repo.BackfillStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
