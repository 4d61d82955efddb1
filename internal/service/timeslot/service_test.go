package timeslot

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timedesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/timedesk/timeclock-backend-go/internal/repository/postgresql"
	"github.com/timedesk/timeclock-backend-go/migrations"
)

var testDB *database.DB

func slotTestInit(t *testing.T) {
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

func truncateSlotTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"time_registers", "user_work_schedules", "users", "companies"}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createSlotTestUser(t *testing.T, ctx context.Context) (userID, companyID string) {
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

// authCtx builds a context carrying the claims the service reads, the way
// the Verifier middleware would.
func authCtx(t *testing.T, userID, companyID string, role user.Role) context.Context {
	t.Helper()
	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	token, _, err := jwtSvc.JWTAuth().Encode(map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"role":       string(role),
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newSlotService() timeslot.TimeRegisterService {
	registerRepo := postgresql.NewTimeRegisterRepository(testDB)
	scheduleRepo := postgresql.NewWorkScheduleRepository(testDB)
	return NewTimeRegisterService(registerRepo, scheduleRepo, time.UTC)
}

func TestTwoSlotDayAccumulatesTotals(t *testing.T) {
	slotTestInit(t)
	baseCtx := context.Background()
	truncateSlotTables(t, baseCtx)
	userID, companyID := createSlotTestUser(t, baseCtx)
	ctx := authCtx(t, userID, companyID, user.RoleEmployee)

	svc := newSlotService()

	first, err := svc.OpenSlot(ctx, userID, companyID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Slot)
	assert.Equal(t, timeslot.SlotStatusOpen, first.Status)

	closed1, err := svc.CloseSlot(ctx, first.ID, time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC), timeslot.SlotStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, "04:00:00", closed1.TotalSlotTime)
	assert.Equal(t, "04:00:00", closed1.TotalTime)

	second, err := svc.OpenSlot(ctx, userID, companyID, time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Slot)
	assert.Equal(t, "04:00:00", second.TotalTime)

	closed2, err := svc.CloseSlot(ctx, second.ID, time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC), timeslot.SlotStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, "04:30:00", closed2.TotalSlotTime)
	assert.Equal(t, "08:30:00", closed2.TotalTime)
}

type fakeRegisterRepo struct {
	timeslot.TimeRegisterRepository
	last    *timeslot.TimeRegister
	created timeslot.TimeRegister
}

func (f *fakeRegisterRepo) GetOpenSlot(ctx context.Context, userID string, date time.Time) (*timeslot.TimeRegister, error) {
	return nil, nil
}

func (f *fakeRegisterRepo) GetLastSlot(ctx context.Context, userID string, date time.Time) (*timeslot.TimeRegister, error) {
	return f.last, nil
}

func (f *fakeRegisterRepo) Create(ctx context.Context, reg timeslot.TimeRegister) (timeslot.TimeRegister, error) {
	f.created = reg
	return reg, nil
}

type fakeScheduleRepo struct {
	schedule.WorkScheduleRepository
}

func (f *fakeScheduleRepo) GetActiveSegments(ctx context.Context, userID string, date time.Time) ([]schedule.WorkScheduleSegment, error) {
	return nil, nil
}

func TestOpenSlotSeedsTotalFromLastSlot(t *testing.T) {
	repo := &fakeRegisterRepo{
		last: &timeslot.TimeRegister{
			Slot:          1,
			Status:        timeslot.SlotStatusClosed,
			TotalSlotTime: "04:00:00",
			TotalTime:     "04:00:00",
		},
	}
	svc := NewTimeRegisterService(repo, &fakeScheduleRepo{}, time.UTC)

	opened, err := svc.OpenSlot(context.Background(), "u1", "c1", time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, opened.Slot)
	assert.Equal(t, "04:00:00", opened.TotalTime)
	assert.Equal(t, timeslot.ZeroDuration, opened.TotalSlotTime)
}

func TestOpenSlotFirstOfDayStartsAtZero(t *testing.T) {
	repo := &fakeRegisterRepo{}
	svc := NewTimeRegisterService(repo, &fakeScheduleRepo{}, time.UTC)

	opened, err := svc.OpenSlot(context.Background(), "u1", "c1", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, opened.Slot)
	assert.Equal(t, timeslot.ZeroDuration, opened.TotalTime)
}

func TestOpenSlotRejectsSecondOpen(t *testing.T) {
	slotTestInit(t)
	baseCtx := context.Background()
	truncateSlotTables(t, baseCtx)
	userID, companyID := createSlotTestUser(t, baseCtx)

	svc := newSlotService()
	ts := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := svc.OpenSlot(baseCtx, userID, companyID, ts, nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.OpenSlot(baseCtx, userID, companyID, ts.Add(time.Hour), nil, nil, nil)
	assert.ErrorIs(t, err, timeslot.ErrSlotAlreadyOpen)
}

func TestCloseSlotRejectsEndBeforeStart(t *testing.T) {
	slotTestInit(t)
	baseCtx := context.Background()
	truncateSlotTables(t, baseCtx)
	userID, companyID := createSlotTestUser(t, baseCtx)
	ctx := authCtx(t, userID, companyID, user.RoleEmployee)

	svc := newSlotService()

	reg, err := svc.OpenSlot(ctx, userID, companyID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.CloseSlot(ctx, reg.ID, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), timeslot.SlotStatusClosed)
	assert.ErrorIs(t, err, timeslot.ErrInvalidTimeRange)
}

func TestSetNewTimeCreatesManualClosedSlot(t *testing.T) {
	slotTestInit(t)
	baseCtx := context.Background()
	truncateSlotTables(t, baseCtx)
	userID, companyID := createSlotTestUser(t, baseCtx)
	ctx := authCtx(t, userID, companyID, user.RoleEmployee)

	svc := newSlotService()

	resp, err := svc.SetNewTime(ctx, timeslot.SetNewTimeRequest{
		HourStart: "2026-03-10T09:00:00Z",
		HourEnd:   "2026-03-10T12:15:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Slot)
	assert.Equal(t, string(timeslot.SlotStatusClosed), resp.Status)
	assert.Equal(t, "03:15:00", resp.TotalSlotTime)
	assert.Equal(t, string(timeslot.ScheduleTypeManual), resp.ScheduleType)
	assert.Equal(t, string(timeslot.JustificationPending), resp.JustificationStatus)
}

func TestSetNewTimeStoresMultiDayDuration(t *testing.T) {
	slotTestInit(t)
	baseCtx := context.Background()
	truncateSlotTables(t, baseCtx)
	userID, companyID := createSlotTestUser(t, baseCtx)
	ctx := authCtx(t, userID, companyID, user.RoleEmployee)

	svc := newSlotService()

	// Hours are unbounded, so a multi-day manual entry goes past two digits.
	resp, err := svc.SetNewTime(ctx, timeslot.SetNewTimeRequest{
		HourStart: "2026-03-10T00:00:00Z",
		HourEnd:   "2026-03-14T04:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "100:00:00", resp.TotalSlotTime)
	assert.Equal(t, "100:00:00", resp.TotalTime)
}

func TestSetNewTimeRejectsInvertedRangeWithoutRow(t *testing.T) {
	slotTestInit(t)
	baseCtx := context.Background()
	truncateSlotTables(t, baseCtx)
	userID, companyID := createSlotTestUser(t, baseCtx)
	ctx := authCtx(t, userID, companyID, user.RoleEmployee)

	svc := newSlotService()

	_, err := svc.SetNewTime(ctx, timeslot.SetNewTimeRequest{
		HourStart: "2026-03-10T12:00:00Z",
		HourEnd:   "2026-03-10T09:00:00Z",
	})
	require.Error(t, err)

	registers, err := postgresql.NewTimeRegisterRepository(testDB).
		ListByDate(baseCtx, userID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, registers)
}

func TestGetByDateSumsClosedSlots(t *testing.T) {
	slotTestInit(t)
	baseCtx := context.Background()
	truncateSlotTables(t, baseCtx)
	userID, companyID := createSlotTestUser(t, baseCtx)
	ctx := authCtx(t, userID, companyID, user.RoleEmployee)

	svc := newSlotService()

	reg, err := svc.OpenSlot(ctx, userID, companyID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), nil, nil, nil)
	require.NoError(t, err)
	_, err = svc.CloseSlot(ctx, reg.ID, time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC), timeslot.SlotStatusClosed)
	require.NoError(t, err)

	day, err := svc.GetByDate(ctx, timeslot.GetByDateRequest{Date: "2026-03-10"})
	require.NoError(t, err)
	require.Len(t, day.Registers, 1)
	assert.Equal(t, "04:00:00", day.TotalTime)
}
