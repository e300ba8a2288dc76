package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/storage"
)

func event(dir model.Direction, at time.Time) model.ClockEvent {
	return model.ClockEvent{Clock: "work", Direction: dir, At: at}
}

func TestAppendAndReadAllRoundTrip(t *testing.T) {
	base := t.TempDir()
	start := time.Date(2024, 9, 19, 14, 49, 0, 0, time.Local)

	var want []model.ClockEvent
	dir := model.DirectionIn
	for i := 0; i < 5; i++ {
		ev := event(dir, start.Add(time.Duration(i)*10*time.Minute))
		if err := storage.AppendEvent(base, ev); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
		want = append(want, ev)
		dir = dir.Flip()
	}

	got, err := storage.ReadAll(base, "work")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ReadAll len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Direction != want[i].Direction || !got[i].At.Equal(want[i].At) {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEventsEmptyWhenClockUnknown(t *testing.T) {
	got, err := storage.ReadAll(t.TempDir(), "nope")
	if err != nil {
		t.Fatalf("ReadAll on unknown clock: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}

func TestEventsSkipsMalformedRecords(t *testing.T) {
	base := t.TempDir()
	if err := storage.EnsureClockDir(base, "work"); err != nil {
		t.Fatal(err)
	}
	lines := "work\tin\t240919 13:45\n" +
		"\n" + // blank lines are fine, logs are hand-editable
		"blah blah blah\n" +
		"cooking\tin\t240919 14:00\n" + // wrong clock
		"work\tsideways\t240919 14:05\n" + // bad direction
		"work\tout\t240919 14:45\n"
	if err := os.WriteFile(storage.LogPath(base, "work"), []byte(lines), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := storage.ReadAll(base, "work")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 valid events, got %d", len(got))
	}
	if got[0].Direction != model.DirectionIn || got[1].Direction != model.DirectionOut {
		t.Errorf("unexpected directions: %v, %v", got[0].Direction, got[1].Direction)
	}
}

func TestEventsIsRestartable(t *testing.T) {
	base := t.TempDir()
	at := time.Date(2024, 9, 19, 13, 45, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		if err := storage.AppendEvent(base, event(model.DirectionIn, at.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	seq := storage.Events(base, "work")
	for pass := 0; pass < 2; pass++ {
		n := 0
		for _, err := range seq {
			if err != nil {
				t.Fatalf("pass %d: %v", pass, err)
			}
			n++
		}
		if n != 3 {
			t.Errorf("pass %d: got %d events, want 3", pass, n)
		}
	}
}

func TestReadErrorOnMissingLogInExistingDir(t *testing.T) {
	base := t.TempDir()
	if err := storage.EnsureClockDir(base, "work"); err != nil {
		t.Fatal(err)
	}
	// The directory exists but its log is gone: structural corruption,
	// not a fresh clock.
	_, err := storage.ReadAll(base, "work")
	var re *storage.ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ReadError for missing log in existing clock dir, got %v", err)
	}
}

func TestReadErrorOnUnreadableLog(t *testing.T) {
	base := t.TempDir()
	if err := storage.EnsureClockDir(base, "work"); err != nil {
		t.Fatal(err)
	}
	// A directory where the log file should be is structural corruption.
	if err := os.Mkdir(storage.LogPath(base, "work"), 0o700); err != nil {
		t.Fatal(err)
	}

	_, err := storage.ReadAll(base, "work")
	var re *storage.ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ReadError, got %v", err)
	}
}

func TestListSiblingClocks(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"work", "cooking"} {
		if err := storage.EnsureClockDir(base, name); err != nil {
			t.Fatal(err)
		}
	}
	// Directories without the data suffix are not clocks.
	if err := os.Mkdir(filepath.Join(base, "notes"), 0o700); err != nil {
		t.Fatal(err)
	}

	got, err := storage.ListSiblingClocks(base)
	if err != nil {
		t.Fatalf("ListSiblingClocks: %v", err)
	}
	want := []string{"cooking", "work"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("clock %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListSiblingClocksMissingBase(t *testing.T) {
	got, err := storage.ListSiblingClocks(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing base should not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no clocks, got %v", got)
	}
}
