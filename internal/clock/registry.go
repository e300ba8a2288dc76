package clock

import (
	"fmt"
	"os"
	"time"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/storage"
)

// Registry enforces mutual exclusion across the clocks sharing one base
// directory. It holds no state of its own; every call works from a fresh
// read of the sibling logs, so there is no process-wide singleton to drift.
type Registry struct {
	Base string
	// Debounce mirrors the engine's window; sibling clock-outs are subject
	// to the same rule as user toggles.
	Debounce time.Duration
}

func (r *Registry) debounce() time.Duration {
	if r.Debounce > 0 {
		return r.Debounce
	}
	return DefaultDebounce
}

// ClockOutOthers clocks out, at the same instant now, every sibling of
// exclude that is currently IN. A sibling clocked in less than the debounce
// window ago is left IN rather than losing a short real session; the
// "at most one clock IN" invariant is knowingly relaxed until that sibling
// accrues enough elapsed time. Any write failure aborts immediately so the
// caller never clocks IN on top of inconsistent sibling state.
func (r *Registry) ClockOutOthers(exclude string, now time.Time) error {
	clocks, err := storage.ListSiblingClocks(r.Base)
	if err != nil {
		return err
	}

	eng := &Engine{Base: r.Base, Debounce: r.Debounce, Registry: r}
	for _, name := range clocks {
		if name == exclude {
			continue
		}
		state, _, err := eng.fold(name, now)
		if err != nil {
			return err
		}
		if state.Direction != model.DirectionIn {
			continue
		}
		if now.Sub(state.LastEvent) < r.debounce() {
			fmt.Fprintf(os.Stderr, "Warning: leaving %q clocked in; it started less than %s ago\n",
				name, r.debounce())
			continue
		}
		fmt.Fprintf(os.Stderr, "Warning: clocking out %q\n", name)
		if err := eng.appendOut(name, state, now); err != nil {
			return err
		}
	}
	return nil
}
