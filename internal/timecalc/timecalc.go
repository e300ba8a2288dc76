package timecalc

import (
	"fmt"
	"time"
)

// StampLayout is the on-disk timestamp format ("yymmdd hh:mm"). Entries are
// kept simple to stay tolerant of manual editing, so resolution is minutes.
const StampLayout = "060102 15:04"

// DayLayout is the date part of StampLayout.
const DayLayout = "060102"

// FormatStamp renders t in the log timestamp format.
func FormatStamp(t time.Time) string {
	return t.Format(StampLayout)
}

// ParseStamp parses a log timestamp in the local timezone.
func ParseStamp(s string) (time.Time, error) {
	return time.ParseInLocation(StampLayout, s, time.Local)
}

// TruncateMinute drops seconds and sub-seconds, keeping the wall-clock
// minute in t's location.
func TruncateMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// FormatClock formats a duration as h:mm:ss with unpadded hours, e.g. "0:40:00".
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d.Seconds())
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatDuration formats a duration as a short human string like "1h 40m" or "45m".
func FormatDuration(d time.Duration) string {
	seconds := int64(d.Seconds())
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", seconds%60)
}

// StartOfDay returns 00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDayMinute returns 23:59 of the same day, the last representable
// minute in the log format.
func EndOfDayMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey returns the yymmdd key used to group events by calendar day.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}
