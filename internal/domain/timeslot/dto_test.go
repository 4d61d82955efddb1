package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/validator"
)

func TestSetNewTimeRequestValidate(t *testing.T) {
	req := SetNewTimeRequest{
		HourStart: "2026-03-10T09:00:00Z",
		HourEnd:   "2026-03-10T17:30:00Z",
	}
	require.NoError(t, req.Validate())

	start, end := req.ParsedRange()
	assert.True(t, end.After(start))
}

func TestSetNewTimeRequestRejectsInvertedRange(t *testing.T) {
	req := SetNewTimeRequest{
		HourStart: "2026-03-10T17:00:00Z",
		HourEnd:   "2026-03-10T09:00:00Z",
	}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "hourEnd")
}

func TestSetNewTimeRequestRejectsEqualStartEnd(t *testing.T) {
	req := SetNewTimeRequest{
		HourStart: "2026-03-10T09:00:00Z",
		HourEnd:   "2026-03-10T09:00:00Z",
	}
	assert.Error(t, req.Validate())
}

func TestSetNewTimeRequestRejectsMalformedTimestamps(t *testing.T) {
	req := SetNewTimeRequest{
		HourStart: "10/03/2026 09:00",
		HourEnd:   "not-a-time",
	}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "hourStart")
	assert.Contains(t, m, "hourEnd")
}

func TestGetRangeRequestValidate(t *testing.T) {
	req := GetRangeRequest{DateStart: "2026-03-01", DateEnd: "2026-03-31"}
	assert.NoError(t, req.Validate())

	req = GetRangeRequest{DateStart: "2026-03-31", DateEnd: "2026-03-01"}
	assert.Error(t, req.Validate())

	req = GetRangeRequest{DateStart: "03-01-2026", DateEnd: "2026-03-31"}
	assert.Error(t, req.Validate())
}

func TestJustifySlotRequestValidate(t *testing.T) {
	req := JustifySlotRequest{
		ID:       "0195f1a2-1111-7abc-8def-0123456789ab",
		Comments: "forgot to clock out before lunch",
	}
	assert.NoError(t, req.Validate())

	req.Comments = "   "
	assert.Error(t, req.Validate())

	req.Comments = "ok"
	bad := "NOT_A_TYPE"
	req.ScheduleType = &bad
	assert.Error(t, req.Validate())

	good := string(ScheduleTypeLateEntry)
	req.ScheduleType = &good
	assert.NoError(t, req.Validate())
}
