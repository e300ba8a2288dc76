package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/report"
)

var t0 = time.Date(2024, 9, 19, 14, 49, 0, 0, time.Local)

func TestStatusWhileClockedIn(t *testing.T) {
	state := model.ClockState{
		Clock:           "work",
		Direction:       model.DirectionIn,
		SessionStart:    t0,
		InitialToday:    t0,
		CumulativeToday: 0,
		LastEvent:       t0,
	}

	var b strings.Builder
	report.Status(&b, state, t0, false)
	out := b.String()

	for _, want := range []string{"work", "clocked in", "240919 14:49", "0:00:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusDebouncedNotice(t *testing.T) {
	state := model.ClockState{Clock: "work", Direction: model.DirectionIn, SessionStart: t0, InitialToday: t0, LastEvent: t0}

	var b strings.Builder
	report.Status(&b, state, t0.Add(3*time.Minute), true)
	if !strings.Contains(b.String(), "toggle ignored") {
		t.Errorf("debounced status should carry a notice:\n%s", b.String())
	}
}

func TestStatusNoEntries(t *testing.T) {
	var b strings.Builder
	report.Status(&b, model.ClockState{Clock: "work", Direction: model.DirectionOut}, t0, false)
	if !strings.Contains(b.String(), "no entries yet") {
		t.Errorf("empty clock should say so:\n%s", b.String())
	}
}

func TestHistoryRows(t *testing.T) {
	days := []model.DaySummary{
		{
			Date:            time.Date(2024, 9, 19, 0, 0, 0, 0, time.Local),
			InitialClockIn:  t0,
			VirtualClockOut: t0.Add(40 * time.Minute),
			Cumulative:      40 * time.Minute,
		},
	}

	var b strings.Builder
	report.History(&b, days)
	out := b.String()

	if !strings.Contains(out, "240919 14:49 | 240919 15:29 | 0:40:00") {
		t.Errorf("unexpected history row:\n%s", out)
	}
}

func TestHistoryEmpty(t *testing.T) {
	var b strings.Builder
	report.History(&b, nil)
	if !strings.Contains(b.String(), "no completed days") {
		t.Errorf("empty history should say so:\n%s", b.String())
	}
}
