// Package clock implements the toggle state machine and the coordination
// between sibling clocks sharing a data directory. Each clock's append-only
// event log is the sole source of truth; all state here is folded from it on
// every call.
package clock

import (
	"sort"
	"time"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/storage"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

// DefaultDebounce is the minimum gap between accepted events. Shorter gaps
// are treated as "just checking the report" and discarded, so toggling twice
// quickly shows the current state without recording a session.
const DefaultDebounce = 5 * time.Minute

// Engine runs the in/out state machine for clocks under one base directory.
type Engine struct {
	Base string
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
	// Registry coordinates sibling clocks before an IN transition.
	Registry *Registry
}

// NewEngine returns an Engine with a Registry over the same base directory
// and debounce window.
func NewEngine(base string, debounce time.Duration) *Engine {
	e := &Engine{Base: base, Debounce: debounce}
	e.Registry = &Registry{Base: base, Debounce: debounce}
	return e
}

func (e *Engine) debounce() time.Duration {
	if e.Debounce > 0 {
		return e.Debounce
	}
	return DefaultDebounce
}

// ToggleResult is what a toggle call hands to the report layer.
type ToggleResult struct {
	State model.ClockState
	Days  []model.DaySummary
	// Debounced is true when the toggle was suppressed and nothing was
	// written; State and Days then describe the unchanged pre-toggle state.
	Debounced bool
}

// Toggle flips the named clock's direction at now, subject to the debounce
// rule. An OUT→IN transition first clocks out any sibling that is IN. The
// next direction is always derived from the folded log, never taken from the
// caller, so directions strictly alternate.
func (e *Engine) Toggle(clock string, now time.Time) (ToggleResult, error) {
	now = timecalc.TruncateMinute(now)

	state, days, err := e.fold(clock, now)
	if err != nil {
		return ToggleResult{}, err
	}

	if state.HasEvents() && now.Sub(state.LastEvent) < e.debounce() {
		return ToggleResult{State: state, Days: days, Debounced: true}, nil
	}

	if state.Direction == model.DirectionOut {
		// Going IN: at most one clock may be IN across the base directory.
		// Sibling clock-outs happen first so the invariant holds the moment
		// our IN event lands. A sibling failure aborts the whole toggle.
		reg := e.Registry
		if reg == nil {
			reg = &Registry{Base: e.Base, Debounce: e.Debounce}
		}
		if err := reg.ClockOutOthers(clock, now); err != nil {
			return ToggleResult{}, err
		}
		ev := model.ClockEvent{Clock: clock, Direction: model.DirectionIn, At: now}
		if err := storage.AppendEvent(e.Base, ev); err != nil {
			return ToggleResult{}, err
		}
	} else {
		if err := e.appendOut(clock, state, now); err != nil {
			return ToggleResult{}, err
		}
	}

	state, days, err = e.fold(clock, now)
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{State: state, Days: days}, nil
}

// Status folds the clock's log without writing anything.
func (e *Engine) Status(clock string, now time.Time) (model.ClockState, []model.DaySummary, error) {
	return e.fold(clock, timecalc.TruncateMinute(now))
}

// appendOut closes the open session at now. A session whose IN is on an
// earlier calendar day is split once at the most recent midnight boundary:
// OUT at 23:59 of the IN's day, IN at 00:00 of now's day, then the real OUT.
// Stay clocked in through two midnights and the gap between those days is
// simply lost. The synthetic pair is bookkeeping, not a user toggle, so it
// bypasses the debounce check.
func (e *Engine) appendOut(clock string, state model.ClockState, now time.Time) error {
	if !state.SessionStart.IsZero() && !timecalc.SameDay(state.SessionStart, now) {
		split := []model.ClockEvent{
			{Clock: clock, Direction: model.DirectionOut, At: timecalc.EndOfDayMinute(state.SessionStart)},
			{Clock: clock, Direction: model.DirectionIn, At: timecalc.StartOfDay(now)},
		}
		for _, ev := range split {
			if err := storage.AppendEvent(e.Base, ev); err != nil {
				return err
			}
		}
	}
	return storage.AppendEvent(e.Base, model.ClockEvent{Clock: clock, Direction: model.DirectionOut, At: now})
}

// interval is one closed in→out pair.
type interval struct {
	in, out time.Time
}

// fold reduces the clock's event log to its derived state and per-day
// summary rows. The reference day for the "today" fields is the open
// session's day while IN, otherwise now's day.
func (e *Engine) fold(clock string, now time.Time) (model.ClockState, []model.DaySummary, error) {
	state := model.ClockState{Clock: clock, Direction: model.DirectionOut}

	var closed []interval
	var openStart time.Time
	for ev, err := range storage.Events(e.Base, clock) {
		if err != nil {
			return model.ClockState{}, nil, err
		}
		// Direction is implied by alternation; the recorded direction of a
		// hand-edited log may disagree, in which case alternation wins.
		if openStart.IsZero() {
			openStart = ev.At
		} else {
			closed = append(closed, interval{in: openStart, out: ev.At})
			openStart = time.Time{}
		}
		state.LastEvent = ev.At
	}

	if !openStart.IsZero() {
		state.Direction = model.DirectionIn
		state.SessionStart = openStart
	}

	days := summarize(closed)

	refDay := now
	if state.Direction == model.DirectionIn {
		refDay = state.SessionStart
	}
	for _, d := range days {
		if timecalc.SameDay(d.Date, refDay) {
			state.InitialToday = d.InitialClockIn
			state.CumulativeToday = d.Cumulative
		}
	}
	if state.Direction == model.DirectionIn {
		if state.InitialToday.IsZero() || state.SessionStart.Before(state.InitialToday) {
			state.InitialToday = state.SessionStart
		}
	}

	return state, days, nil
}

// summarize groups closed intervals by the calendar day of their IN event
// and folds each group into a DaySummary, oldest day first.
func summarize(closed []interval) []model.DaySummary {
	byDay := make(map[string]*model.DaySummary)
	var keys []string
	for _, iv := range closed {
		key := timecalc.DayKey(iv.in)
		d, ok := byDay[key]
		if !ok {
			d = &model.DaySummary{
				Date:           timecalc.StartOfDay(iv.in),
				InitialClockIn: iv.in,
			}
			byDay[key] = d
			keys = append(keys, key)
		}
		if iv.in.Before(d.InitialClockIn) {
			d.InitialClockIn = iv.in
		}
		d.Cumulative += iv.out.Sub(iv.in)
	}
	sort.Strings(keys)

	days := make([]model.DaySummary, 0, len(keys))
	for _, key := range keys {
		d := byDay[key]
		d.VirtualClockOut = d.InitialClockIn.Add(d.Cumulative)
		days = append(days, *d)
	}
	return days
}
