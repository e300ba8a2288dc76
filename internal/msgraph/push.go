package msgraph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

// graphTimeLayout is the zone-less dateTime format Graph expects alongside
// an explicit timeZone field.
const graphTimeLayout = "2006-01-02T15:04:05"

// PushResult holds counters for a push operation.
type PushResult struct {
	Pushed int
	Errors int
}

// PushOptions configures a push run.
type PushOptions struct {
	Clock    string
	Days     []model.DaySummary
	Timezone string
	DryRun   bool
}

// EventPoster is the part of Client that Push needs.
type EventPoster interface {
	CreateEvent(ctx context.Context, ev CalendarEvent) error
}

// transactionID derives a stable per-clock-per-day transaction ID, so
// re-pushing the same day dedupes on the Graph side instead of creating a
// second event.
func transactionID(clock string, day time.Time) string {
	key := fmt.Sprintf("ttc/%s/%s", clock, timecalc.DayKey(day))
	return "ttc-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// buildEvent maps one day summary onto a calendar event covering the virtual
// session: initial clock-in through virtual clock-out.
func buildEvent(clock string, d model.DaySummary, tz string) CalendarEvent {
	return CalendarEvent{
		Subject: clock,
		Body: &ItemBody{
			ContentType: "text",
			Content: fmt.Sprintf("ttc: %s on %s, cumulative %s",
				clock, d.Date.Format("2006-01-02"), timecalc.FormatClock(d.Cumulative)),
		},
		Start:         DateTimeTimeZone{DateTime: d.InitialClockIn.Format(graphTimeLayout), TimeZone: tz},
		End:           DateTimeTimeZone{DateTime: d.VirtualClockOut.Format(graphTimeLayout), TimeZone: tz},
		Categories:    []string{"ttc"},
		TransactionID: transactionID(clock, d.Date),
	}
}

// Push creates one calendar event per day summary. Failures are counted and
// reported; the first error is returned after the remaining days were
// attempted.
func Push(ctx context.Context, client EventPoster, opts PushOptions) (PushResult, error) {
	tz := opts.Timezone
	if tz == "" {
		tz, _ = time.Now().Zone()
	}

	var res PushResult
	var firstErr error
	for _, d := range opts.Days {
		ev := buildEvent(opts.Clock, d, tz)
		if opts.DryRun {
			fmt.Printf("would push: %s  %s – %s (%s)\n",
				ev.Subject, ev.Start.DateTime, ev.End.DateTime, timecalc.FormatClock(d.Cumulative))
			continue
		}
		if err := client.CreateEvent(ctx, ev); err != nil {
			res.Errors++
			if firstErr == nil {
				firstErr = fmt.Errorf("pushing %s: %w", d.Date.Format("2006-01-02"), err)
			}
			continue
		}
		res.Pushed++
	}
	return res, firstErr
}
