package timeslot

import (
	"testing"
	"time"
)

func TestParseDurationSeconds(t *testing.T) {
	cases := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"00:00:00", 0, false},
		{"01:30:45", 5445, false},
		{"23:59:59", 86399, false},
		{"100:00:00", 360000, false},
		{"1:00:00", 3600, false},
		{"00:60:00", 0, true},
		{"00:00:60", 0, true},
		{"01:30", 0, true},
		{"1h30m", 0, true},
		{"", 0, true},
		{"-01:00:00", 0, true},
	}
	for _, c := range cases {
		got, err := ParseDurationSeconds(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseDurationSeconds(%q) = %d, want error", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDurationSeconds(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDurationSeconds(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestFormatDurationSeconds(t *testing.T) {
	cases := []struct {
		input int64
		want  string
	}{
		{0, "00:00:00"},
		{5445, "01:30:45"},
		{86399, "23:59:59"},
		{360000, "100:00:00"},
		{-10, "00:00:00"},
	}
	for _, c := range cases {
		got := FormatDurationSeconds(c.input)
		if got != c.want {
			t.Errorf("FormatDurationSeconds(%d) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestSumDurations(t *testing.T) {
	got, err := SumDurations([]string{"01:30:45", "00:45:20"})
	if err != nil {
		t.Fatalf("SumDurations unexpected error: %v", err)
	}
	if got != "02:16:05" {
		t.Errorf("SumDurations = %q, want %q", got, "02:16:05")
	}
}

func TestSumDurationsOrderIndependent(t *testing.T) {
	a := []string{"00:10:00", "01:55:30", "00:00:45"}
	b := []string{"00:00:45", "00:10:00", "01:55:30"}

	gotA, err := SumDurations(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotB, err := SumDurations(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotA != gotB {
		t.Errorf("sum depends on order: %q vs %q", gotA, gotB)
	}
}

func TestSumDurationsExceedsDay(t *testing.T) {
	got, err := SumDurations([]string{"20:00:00", "20:00:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "40:00:00" {
		t.Errorf("SumDurations = %q, want %q", got, "40:00:00")
	}
}

func TestSumDurationsMalformed(t *testing.T) {
	if _, err := SumDurations([]string{"01:00:00", "bogus"}); err == nil {
		t.Error("SumDurations accepted malformed input")
	}
}

func TestDurationBetween(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		end  time.Time
		want string
	}{
		{start.Add(8*time.Hour + 15*time.Minute), "08:15:00"},
		{start, "00:00:00"},
		{start.Add(-time.Hour), "00:00:00"}, // clamped
		{start.Add(1500 * time.Millisecond), "00:00:01"},
	}
	for _, c := range cases {
		got := DurationBetween(start, c.end)
		if got != c.want {
			t.Errorf("DurationBetween(start, %v) = %q, want %q", c.end, got, c.want)
		}
	}
}
