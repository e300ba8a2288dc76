package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
)

func exportDay() model.DaySummary {
	in := time.Date(2024, 9, 19, 14, 49, 0, 0, time.Local)
	return model.DaySummary{
		Date:            time.Date(2024, 9, 19, 0, 0, 0, 0, time.Local),
		InitialClockIn:  in,
		VirtualClockOut: in.Add(40 * time.Minute),
		Cumulative:      40 * time.Minute,
	}
}

func TestRenderDaysCSV(t *testing.T) {
	var b strings.Builder
	if err := renderDays(&b, []model.DaySummary{exportDay()}, "csv"); err != nil {
		t.Fatalf("renderDays csv: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "date,initial_clock_in,virtual_clock_out,cumulative_minutes") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "2024-09-19,240919 14:49,240919 15:29,40") {
		t.Errorf("missing row:\n%s", out)
	}
}

func TestRenderDaysJSON(t *testing.T) {
	var b strings.Builder
	if err := renderDays(&b, []model.DaySummary{exportDay()}, "json"); err != nil {
		t.Fatalf("renderDays json: %v", err)
	}
	if !strings.Contains(b.String(), `"initial_clock_in"`) {
		t.Errorf("unexpected JSON:\n%s", b.String())
	}
}

func TestRenderDaysRejectsUnknownFormat(t *testing.T) {
	var b strings.Builder
	err := renderDays(&b, []model.DaySummary{exportDay()}, "jsno")
	if err == nil {
		t.Fatal("a typoed format must error, not fall back to CSV")
	}
	if b.Len() != 0 {
		t.Errorf("nothing should be written on a bad format, got:\n%s", b.String())
	}
}

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"has,comma", `"has,comma"`},
		{`has"quote`, `"has""quote"`},
		{"has\nnewline", "\"has\nnewline\""},
	}
	for _, tt := range tests {
		if got := csvEscape(tt.in); got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
