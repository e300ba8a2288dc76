// Package cache maintains a SQLite snapshot of per-clock day summaries for
// fast cross-clock display. The event logs remain the source of truth; the
// cache is rebuilt per clock on every accepted toggle and never feeds back
// into engine state. Deleting it costs nothing but a rebuild.
package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

const fileName = "summary.db"

// dateLayout is the ISO date key used for the date column; it sorts
// lexicographically in chronological order.
const dateLayout = "2006-01-02"

// DB is a handle to the summary cache.
type DB struct {
	db *sql.DB
}

// Open opens (creating and migrating if needed) the summary cache under base.
func Open(base string) (*DB, error) {
	path := filepath.Join(base, fileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

// Close releases the database handle.
func (c *DB) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// ReplaceClock swaps the cached rows for one clock with freshly folded
// summaries, atomically.
func (c *DB) ReplaceClock(clock string, days []model.DaySummary) error {
	if c == nil || c.db == nil {
		return fmt.Errorf("replace clock: cache is nil")
	}
	if clock == "" {
		return fmt.Errorf("replace clock: clock name is empty")
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("replace clock: begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM day_summaries WHERE clock = ?`, clock); err != nil {
		return fmt.Errorf("replace clock: delete old rows: %w", err)
	}
	for _, d := range days {
		_, err := tx.Exec(
			`INSERT INTO day_summaries (clock, date, initial_in, virtual_out, cumulative_seconds) VALUES (?, ?, ?, ?, ?)`,
			clock,
			d.Date.Format(dateLayout),
			timecalc.FormatStamp(d.InitialClockIn),
			timecalc.FormatStamp(d.VirtualClockOut),
			int64(d.Cumulative.Seconds()),
		)
		if err != nil {
			return fmt.Errorf("replace clock: insert row for %s: %w", d.Date.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace clock: commit transaction: %w", err)
	}
	return nil
}

// Row is one cached day summary together with the clock it belongs to.
type Row struct {
	Clock   string
	Summary model.DaySummary
}

// AllSummaries returns every cached row ordered by clock, then date.
func (c *DB) AllSummaries() ([]Row, error) {
	if c == nil || c.db == nil {
		return nil, fmt.Errorf("all summaries: cache is nil")
	}

	rows, err := c.db.Query(
		`SELECT clock, date, initial_in, virtual_out, cumulative_seconds FROM day_summaries ORDER BY clock, date`)
	if err != nil {
		return nil, fmt.Errorf("all summaries: query: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r          Row
			date       string
			initial    string
			virtual    string
			cumSeconds int64
		)
		if err := rows.Scan(&r.Clock, &date, &initial, &virtual, &cumSeconds); err != nil {
			return nil, fmt.Errorf("all summaries: scan: %w", err)
		}
		day, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("all summaries: bad date %q: %w", date, err)
		}
		initialIn, err := timecalc.ParseStamp(initial)
		if err != nil {
			return nil, fmt.Errorf("all summaries: bad initial_in %q: %w", initial, err)
		}
		virtualOut, err := timecalc.ParseStamp(virtual)
		if err != nil {
			return nil, fmt.Errorf("all summaries: bad virtual_out %q: %w", virtual, err)
		}
		r.Summary = model.DaySummary{
			Date:            day,
			InitialClockIn:  initialIn,
			VirtualClockOut: virtualOut,
			Cumulative:      time.Duration(cumSeconds) * time.Second,
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all summaries: rows: %w", err)
	}
	return out, nil
}
