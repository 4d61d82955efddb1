package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/timedesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
)

func clock(hour, min, sec int) time.Time {
	return time.Date(2026, 3, 10, hour, min, sec, 0, time.UTC)
}

func segment(startHour, startMin, endHour, endMin int) schedule.WorkScheduleSegment {
	return schedule.WorkScheduleSegment{
		StartTime: clock(startHour, startMin, 0),
		EndTime:   clock(endHour, endMin, 0),
	}
}

func TestClassifyNoSegments(t *testing.T) {
	got := Classify(clock(9, 0, 0), clock(17, 0, 0), nil)
	assert.Equal(t, timeslot.ScheduleTypeNormal, got)
}

func TestClassifyExactMatch(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}
	got := Classify(clock(9, 0, 0), clock(17, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeNormal, got)
}

func TestClassifyWithinSegment(t *testing.T) {
	// Started on time, worked past the end. Not an early exit.
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}
	got := Classify(clock(9, 0, 0), clock(18, 30, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeNormal, got)
}

func TestClassifySpanningSegment(t *testing.T) {
	// Arrived early, left late: the whole segment was covered.
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}
	got := Classify(clock(8, 30, 0), clock(17, 45, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeNormal, got)
}

func TestClassifyLateEntry(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}
	got := Classify(clock(9, 15, 0), clock(17, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeLateEntry, got)
}

func TestClassifyEarlyExit(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}
	got := Classify(clock(9, 0, 0), clock(16, 30, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeEarlyExit, got)
}

func TestClassifyLateEntryBeatsEarlyExit(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}
	got := Classify(clock(9, 30, 0), clock(16, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeLateEntry, got)
}

func TestClassifyExtraBefore(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}
	got := Classify(clock(6, 0, 0), clock(8, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeExtraBefore, got)
}

func TestClassifyExtraAfter(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}
	got := Classify(clock(19, 0, 0), clock(21, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeExtraAfter, got)
}

func TestClassifyBoundaryTouchCountsAsInside(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}

	// Ends exactly at segment start: overlaps, left before segment end.
	got := Classify(clock(8, 0, 0), clock(9, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeEarlyExit, got)

	// Starts exactly at segment end: overlaps, late entry.
	got = Classify(clock(17, 0, 0), clock(18, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeLateEntry, got)
}

func TestClassifySplitShift(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{
		segment(9, 0, 13, 0),
		segment(14, 0, 18, 0),
	}

	// Afternoon slot matches the second segment.
	got := Classify(clock(14, 0, 0), clock(18, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeNormal, got)

	got = Classify(clock(14, 20, 0), clock(18, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeLateEntry, got)
}

func TestClassifyOpenSlotProvisional(t *testing.T) {
	segments := []schedule.WorkScheduleSegment{segment(9, 0, 17, 0)}

	// Open slot: end == start, no EARLY_EXIT while still running.
	got := Classify(clock(9, 0, 0), clock(9, 0, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeNormal, got)

	got = Classify(clock(9, 45, 0), clock(9, 45, 0), segments)
	assert.Equal(t, timeslot.ScheduleTypeLateEntry, got)
}
