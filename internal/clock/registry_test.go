package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/toggle-timeclock/internal/clock"
	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/storage"
)

// clockedIn returns the names of all clocks under base currently IN.
func clockedIn(t *testing.T, eng *clock.Engine, base string, now time.Time) []string {
	t.Helper()
	names, err := storage.ListSiblingClocks(base)
	require.NoError(t, err)
	var in []string
	for _, name := range names {
		state, _, err := eng.Status(name, now)
		require.NoError(t, err)
		if state.Direction == model.DirectionIn {
			in = append(in, name)
		}
	}
	return in
}

func TestClockingInClocksOutSibling(t *testing.T) {
	base := t.TempDir()
	eng := clock.NewEngine(base, 0)

	_, err := eng.Toggle("work", t0)
	require.NoError(t, err)

	at := t0.Add(30 * time.Minute)
	res, err := eng.Toggle("cooking", at)
	require.NoError(t, err)
	require.False(t, res.Debounced)
	assert.Equal(t, model.DirectionIn, res.State.Direction)

	// work was clocked out at the same instant cooking clocked in.
	workState, workDays, err := eng.Status("work", at)
	require.NoError(t, err)
	assert.Equal(t, model.DirectionOut, workState.Direction)
	require.Len(t, workDays, 1)
	assert.Equal(t, 30*time.Minute, workDays[0].Cumulative)

	assert.Equal(t, []string{"cooking"}, clockedIn(t, eng, base, at))
}

func TestAtMostOneClockInAcrossMany(t *testing.T) {
	base := t.TempDir()
	eng := clock.NewEngine(base, 0)

	names := []string{"work", "cooking", "reading", "errands"}
	now := t0
	for _, name := range names {
		_, err := eng.Toggle(name, now)
		require.NoError(t, err)
		in := clockedIn(t, eng, base, now)
		require.Len(t, in, 1)
		assert.Equal(t, name, in[0])
		now = now.Add(20 * time.Minute)
	}
}

func TestDebouncedSiblingStaysIn(t *testing.T) {
	base := t.TempDir()
	eng := clock.NewEngine(base, 0)

	_, err := eng.Toggle("work", t0)
	require.NoError(t, err)

	// cooking has no events, so its own toggle is not debounced; work was
	// clocked in only 3 minutes ago, so its clock-out is suppressed and the
	// one-clock-in invariant is knowingly relaxed.
	at := t0.Add(3 * time.Minute)
	res, err := eng.Toggle("cooking", at)
	require.NoError(t, err)
	require.False(t, res.Debounced)

	in := clockedIn(t, eng, base, at)
	assert.ElementsMatch(t, []string{"work", "cooking"}, in)
}

func TestSiblingClockOutSplitsAtMidnight(t *testing.T) {
	base := t.TempDir()
	eng := clock.NewEngine(base, 0)

	in := time.Date(2024, 9, 19, 23, 30, 0, 0, time.Local)
	_, err := eng.Toggle("work", in)
	require.NoError(t, err)

	at := time.Date(2024, 9, 20, 0, 45, 0, 0, time.Local)
	_, err = eng.Toggle("cooking", at)
	require.NoError(t, err)

	events, err := storage.ReadAll(base, "work")
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, model.DirectionOut, events[3].Direction)
	assert.True(t, events[3].At.Equal(at))
}
