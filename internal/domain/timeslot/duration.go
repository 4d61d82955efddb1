package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Durations are carried as HH:MM:SS strings. Hours are unbounded (a range
// total can exceed 24 or 99 hours), minutes and seconds are 00-59.
var durationRegex = regexp.MustCompile(`^(\d+):([0-5]\d):([0-5]\d)$`)

const ZeroDuration = "00:00:00"

// ParseDurationSeconds converts an HH:MM:SS string to seconds.
func ParseDurationSeconds(s string) (int64, error) {
	m := durationRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("malformed duration %q: want HH:MM:SS", s)
	}
	hours, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed duration %q: %w", s, err)
	}
	minutes, _ := strconv.ParseInt(m[2], 10, 64)
	seconds, _ := strconv.ParseInt(m[3], 10, 64)
	return hours*3600 + minutes*60 + seconds, nil
}

// FormatDurationSeconds renders seconds as HH:MM:SS. Negative input is
// clamped to zero.
func FormatDurationSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// SumDurations sums HH:MM:SS durations. It is associative and
// order-independent; any malformed input fails the whole sum.
func SumDurations(durations []string) (string, error) {
	var total int64
	for _, d := range durations {
		secs, err := ParseDurationSeconds(d)
		if err != nil {
			return "", err
		}
		total += secs
	}
	return FormatDurationSeconds(total), nil
}

// DurationBetween computes end-start floored to whole seconds, clamped to
// be non-negative, as HH:MM:SS.
func DurationBetween(start, end time.Time) string {
	return FormatDurationSeconds(int64(end.Sub(start) / time.Second))
}
