package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

func TestFormatStamp(t *testing.T) {
	at := time.Date(2024, 9, 19, 13, 45, 0, 0, time.Local)
	if got := timecalc.FormatStamp(at); got != "240919 13:45" {
		t.Errorf("FormatStamp = %q, want %q", got, "240919 13:45")
	}
}

func TestParseStamp(t *testing.T) {
	got, err := timecalc.ParseStamp("240919 13:45")
	if err != nil {
		t.Fatalf("ParseStamp: %v", err)
	}
	want := time.Date(2024, 9, 19, 13, 45, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseStamp = %v, want %v", got, want)
	}
}

func TestParseStampRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "not a stamp", "2024-09-19 13:45", "240919"} {
		if _, err := timecalc.ParseStamp(s); err == nil {
			t.Errorf("ParseStamp(%q) should fail", s)
		}
	}
}

func TestTruncateMinute(t *testing.T) {
	at := time.Date(2024, 9, 19, 13, 45, 33, 123456, time.Local)
	want := time.Date(2024, 9, 19, 13, 45, 0, 0, time.Local)
	if got := timecalc.TruncateMinute(at); !got.Equal(want) {
		t.Errorf("TruncateMinute = %v, want %v", got, want)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{40 * time.Minute, "0:40:00"},
		{90 * time.Second, "0:01:30"},
		{time.Hour + time.Minute + time.Second, "1:01:01"},
		{25 * time.Hour, "25:00:00"},
		{-time.Minute, "0:00:00"},
	}
	for _, tt := range tests {
		if got := timecalc.FormatClock(tt.d); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{45 * time.Minute, "45m"},
		{time.Hour + 40*time.Minute, "1h 40m"},
	}
	for _, tt := range tests {
		if got := timecalc.FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDayBoundaries(t *testing.T) {
	at := time.Date(2024, 9, 19, 13, 45, 0, 0, time.Local)

	if got := timecalc.StartOfDay(at); !got.Equal(time.Date(2024, 9, 19, 0, 0, 0, 0, time.Local)) {
		t.Errorf("StartOfDay = %v", got)
	}
	if got := timecalc.EndOfDayMinute(at); !got.Equal(time.Date(2024, 9, 19, 23, 59, 0, 0, time.Local)) {
		t.Errorf("EndOfDayMinute = %v", got)
	}
	if got := timecalc.DayKey(at); got != "240919" {
		t.Errorf("DayKey = %q", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 9, 19, 23, 59, 0, 0, time.Local)
	b := time.Date(2024, 9, 20, 0, 0, 0, 0, time.Local)
	if !timecalc.SameDay(a, a.Add(-23*time.Hour)) {
		t.Error("same calendar day reported as different")
	}
	if timecalc.SameDay(a, b) {
		t.Error("adjacent days reported as same")
	}
}
