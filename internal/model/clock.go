package model

import "time"

// Direction is the side of the clock an event flips to.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == DirectionIn {
		return DirectionOut
	}
	return DirectionIn
}

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// ClockEvent is one immutable record in a clock's append-only log.
// Timestamps carry minute resolution, matching the on-disk format.
type ClockEvent struct {
	Clock     string    `json:"clock"`
	Direction Direction `json:"direction"`
	At        time.Time `json:"at"`
}

// ClockState is derived by folding a clock's event log. The log is the
// source of truth; ClockState is never persisted.
type ClockState struct {
	Clock string `json:"clock"`
	// Direction is the current side of the clock; OUT when the log is empty.
	Direction Direction `json:"direction"`
	// SessionStart is the last accepted IN; zero while OUT.
	SessionStart time.Time `json:"session_start,omitzero"`
	// InitialToday is the first IN of the reference day (the open session's
	// day while IN, otherwise the day of the fold); zero if that day has none.
	InitialToday time.Time `json:"initial_today,omitzero"`
	// CumulativeToday sums the reference day's closed in→out intervals.
	// An open session is not included until it closes.
	CumulativeToday time.Duration `json:"cumulative_today"`
	// LastEvent is the timestamp of the newest log record; zero when none.
	LastEvent time.Time `json:"last_event,omitzero"`
}

// HasEvents reports whether the clock has any recorded events.
func (s ClockState) HasEvents() bool {
	return !s.LastEvent.IsZero()
}

// VirtualClockOut projects the clock-out instant the user would have if the
// day's total time had been one unbroken session from the initial clock-in.
// While clocked in, the open session's elapsed time up to now is included.
// Zero if the reference day has no clock-in.
func (s ClockState) VirtualClockOut(now time.Time) time.Time {
	if s.InitialToday.IsZero() {
		return time.Time{}
	}
	v := s.InitialToday.Add(s.CumulativeToday)
	if s.Direction == DirectionIn {
		v = v.Add(now.Sub(s.SessionStart))
	}
	return v
}

// DaySummary is one report row, folded from a single calendar day's closed
// intervals. VirtualClockOut is always exactly InitialClockIn + Cumulative.
type DaySummary struct {
	Date            time.Time     `json:"date"`
	InitialClockIn  time.Time     `json:"initial_clock_in"`
	VirtualClockOut time.Time     `json:"virtual_clock_out"`
	Cumulative      time.Duration `json:"cumulative"`
}
