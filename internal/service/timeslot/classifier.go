package timeslot

import (
	"time"

	"github.com/timedesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
)

// clockSeconds projects a timestamp onto seconds since local midnight, so
// slots and schedule segments compare on wall-clock time alone.
func clockSeconds(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// Classify relates a slot's interval to the expected working segments of
// its day. Boundary matches count as inside: a slot running exactly from
// segment start to segment end is NORMAL. A slot that fully spans a
// segment is also NORMAL: the scheduled time was covered, so nothing
// needs justifying.
//
// For a still-open slot pass end == start; the classification is then
// provisional and recomputed at close.
func Classify(start, end time.Time, segments []schedule.WorkScheduleSegment) timeslot.ScheduleType {
	if len(segments) == 0 {
		return timeslot.ScheduleTypeNormal
	}

	startSec := clockSeconds(start)
	endSec := clockSeconds(end)

	// Find the segment the slot overlaps. Segments are ordered by start
	// time; the first overlap wins.
	var overlap *schedule.WorkScheduleSegment
	for i := range segments {
		segStart := clockSeconds(segments[i].StartTime)
		segEnd := clockSeconds(segments[i].EndTime)
		if startSec <= segEnd && endSec >= segStart {
			overlap = &segments[i]
			break
		}
	}

	if overlap == nil {
		if endSec < clockSeconds(segments[0].StartTime) {
			return timeslot.ScheduleTypeExtraBefore
		}
		return timeslot.ScheduleTypeExtraAfter
	}

	segStart := clockSeconds(overlap.StartTime)
	segEnd := clockSeconds(overlap.EndTime)

	if startSec > segStart {
		return timeslot.ScheduleTypeLateEntry
	}
	if endSec > startSec && endSec < segEnd {
		return timeslot.ScheduleTypeEarlyExit
	}
	return timeslot.ScheduleTypeNormal
}
