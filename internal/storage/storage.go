package storage

import (
	"bufio"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

const (
	// dirSuffix marks a directory as holding one clock's data. Sibling
	// clocks are discovered by scanning the base directory for it.
	dirSuffix = "_data"
	// logName is the append-only event log inside a clock directory.
	// It is the sole source of truth for that clock.
	logName = "events.log"
)

// BaseDir returns the default root data directory (~/.ttc).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttc"), nil
}

// ClockDir returns the data directory for the named clock.
func ClockDir(base, clock string) string {
	return filepath.Join(base, clock+dirSuffix)
}

// LogPath returns the path of the named clock's event log.
func LogPath(base, clock string) string {
	return filepath.Join(ClockDir(base, clock), logName)
}

// EnsureClockDir creates the clock's data directory if absent. Idempotent.
func EnsureClockDir(base, clock string) error {
	dir := ClockDir(base, clock)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	return nil
}

// encodeLine renders one event as a log record:
//
//	<clock>\t<direction>\t<yymmdd hh:mm>
func encodeLine(ev model.ClockEvent) string {
	return ev.Clock + "\t" + string(ev.Direction) + "\t" + timecalc.FormatStamp(ev.At) + "\n"
}

// decodeLine parses one log record for the given clock. A record naming a
// different clock is rejected like any other malformed record.
func decodeLine(clock, line string) (model.ClockEvent, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 3 {
		return model.ClockEvent{}, fmt.Errorf("expected 3 tab-separated fields, got %d", len(parts))
	}
	if parts[0] != clock {
		return model.ClockEvent{}, fmt.Errorf("record names clock %q", parts[0])
	}
	dir := model.Direction(parts[1])
	if !dir.Valid() {
		return model.ClockEvent{}, fmt.Errorf("unknown direction %q", parts[1])
	}
	at, err := timecalc.ParseStamp(parts[2])
	if err != nil {
		return model.ClockEvent{}, fmt.Errorf("bad timestamp %q: %w", parts[2], err)
	}
	return model.ClockEvent{Clock: clock, Direction: dir, At: at}, nil
}

// AppendEvent appends one record to the event's clock log, creating the
// directory and log on first use. The record is a single short write to a
// file opened with O_APPEND, so concurrent readers never observe a partial
// record.
func AppendEvent(base string, ev model.ClockEvent) error {
	if err := EnsureClockDir(base, ev.Clock); err != nil {
		return err
	}
	path := LogPath(base, ev.Clock)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	_, werr := f.WriteString(encodeLine(ev))
	cerr := f.Close()
	if werr != nil {
		return &WriteError{Path: path, Err: werr}
	}
	if cerr != nil {
		return &WriteError{Path: path, Err: cerr}
	}
	return nil
}

// Events returns the clock's events in log order as a lazy, restartable
// sequence; every range over it re-reads the log from disk. A clock with no
// directory or no log yields an empty sequence. A single malformed record is
// skipped with a warning on stderr; an unreadable log yields a *ReadError as
// the final element.
func Events(base, clock string) iter.Seq2[model.ClockEvent, error] {
	path := LogPath(base, clock)
	return func(yield func(model.ClockEvent, error) bool) {
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			// Only a clock with no directory at all has no events. A clock
			// directory missing its log means someone deleted it; treating
			// that as a fresh clock would silently toggle on a gutted store.
			if _, statErr := os.Stat(ClockDir(base, clock)); statErr == nil {
				yield(model.ClockEvent{}, &ReadError{Path: path, Err: err})
			}
			return
		}
		if err != nil {
			yield(model.ClockEvent{}, &ReadError{Path: path, Err: err})
			return
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				// Blank lines are tolerated; the log is hand-editable.
				continue
			}
			ev, err := decodeLine(clock, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: skipping %s:%d: %v\n", path, lineNo, err)
				continue
			}
			if !yield(ev, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(model.ClockEvent{}, &ReadError{Path: path, Err: err})
		}
	}
}

// ReadAll collects the clock's full event log into a slice.
func ReadAll(base, clock string) ([]model.ClockEvent, error) {
	var events []model.ClockEvent
	for ev, err := range Events(base, clock) {
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// ListSiblingClocks returns the names of all clocks with a data directory
// under base, sorted. A missing base directory means no clocks.
func ListSiblingClocks(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &ReadError{Path: base, Err: err}
	}
	var clocks []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), dirSuffix)
		if !ok || name == "" {
			continue
		}
		clocks = append(clocks, name)
	}
	sort.Strings(clocks)
	return clocks, nil
}
