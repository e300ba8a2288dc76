// Package report renders engine state for the terminal. It only formats;
// all numbers come in pre-computed from the clock engine.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	inStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	outStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Status writes the single-clock status block: current direction, initial
// clock-in, cumulative time, and virtual clock-out for the reference day.
func Status(w io.Writer, state model.ClockState, now time.Time, debounced bool) {
	if debounced {
		fmt.Fprintln(w, warnStyle.Render("toggle ignored: less than the debounce window since the last entry"))
	}

	dir := outStyle.Render("clocked out")
	if state.Direction == model.DirectionIn {
		dir = inStyle.Render("clocked in")
	}
	fmt.Fprintf(w, "%s — %s\n", titleStyle.Render(state.Clock), dir)

	if !state.HasEvents() {
		fmt.Fprintln(w, labelStyle.Render("  no entries yet"))
		return
	}

	cumulative := state.CumulativeToday
	if state.Direction == model.DirectionIn {
		cumulative += now.Sub(state.SessionStart)
	}

	if !state.InitialToday.IsZero() {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("initial clock-in:  "), timecalc.FormatStamp(state.InitialToday))
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("cumulative time:   "), timecalc.FormatClock(cumulative))
	if v := state.VirtualClockOut(now); !v.IsZero() {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("virtual clock-out: "), timecalc.FormatStamp(v))
	}
}

// History writes one line per historical day:
//
//	initial clock-in | virtual clock-out | cumulative time
func History(w io.Writer, days []model.DaySummary) {
	if len(days) == 0 {
		fmt.Fprintln(w, labelStyle.Render("no completed days"))
		return
	}
	for _, d := range days {
		fmt.Fprintf(w, "%s | %s | %s\n",
			timecalc.FormatStamp(d.InitialClockIn),
			timecalc.FormatStamp(d.VirtualClockOut),
			timecalc.FormatClock(d.Cumulative))
	}
}

// ClockHeader writes a clock-name heading above a history block.
func ClockHeader(w io.Writer, clock string) {
	fmt.Fprintln(w, titleStyle.Render(clock))
}
