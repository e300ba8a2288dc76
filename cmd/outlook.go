package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/msgraph"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

var (
	outlookPushDate   string
	outlookPushFrom   string
	outlookPushTo     string
	outlookPushDryRun bool
	outlookPushTZ     string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookPushCmd = &cobra.Command{
	Use:   "push <clock>",
	Short: "Push day summaries to the Outlook calendar as virtual sessions",
	Long: `Creates one calendar event per recorded day, spanning the initial
clock-in through the virtual clock-out. Re-pushing a day is idempotent; the
event carries a stable transaction ID derived from the clock and date.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutlookPush,
}

func init() {
	outlookPushCmd.Flags().StringVar(&outlookPushDate, "date", "", "Push a single day (YYYY-MM-DD)")
	outlookPushCmd.Flags().StringVar(&outlookPushFrom, "from", "", "Start date (YYYY-MM-DD)")
	outlookPushCmd.Flags().StringVar(&outlookPushTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookPushCmd.Flags().BoolVar(&outlookPushDryRun, "dry-run", false, "Print what would be pushed without calling Graph")
	outlookPushCmd.Flags().StringVar(&outlookPushTZ, "timezone", "", "IANA timezone for event times (overrides config)")
	outlookCmd.AddCommand(outlookPushCmd)
}

func runOutlookPush(cmd *cobra.Command, args []string) error {
	clockName := args[0]
	now := time.Now()

	cfg, _, eng := mustSetup()

	_, days, err := eng.Status(clockName, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	days, err = filterDays(days, outlookPushDate, outlookPushFrom, outlookPushTo, now)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		fmt.Println("Nothing to push.")
		return nil
	}

	tz := cfg.Outlook.Timezone
	if outlookPushTZ != "" {
		tz = outlookPushTZ
	}

	opts := msgraph.PushOptions{Clock: clockName, Days: days, Timezone: tz, DryRun: outlookPushDryRun}

	if outlookPushDryRun {
		_, err := msgraph.Push(cmd.Context(), nil, opts)
		return err
	}

	ctx := context.Background()
	client, err := msgraph.NewAuthenticatedClient(ctx, cfg.Outlook.TenantID, cfg.Outlook.ClientID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	res, err := msgraph.Push(ctx, client, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Push finished with errors (%d pushed, %d failed): %v\n", res.Pushed, res.Errors, err)
		os.Exit(2)
	}
	fmt.Printf("Pushed %d day(s) for %q.\n", res.Pushed, clockName)
	return nil
}

// filterDays narrows day summaries to the requested date or range. With no
// flags set, all recorded days are pushed.
func filterDays(days []model.DaySummary, date, from, to string, now time.Time) ([]model.DaySummary, error) {
	const layout = "2006-01-02"

	if date != "" {
		if _, err := time.ParseInLocation(layout, date, time.Local); err != nil {
			return nil, fmt.Errorf("invalid --date %q: %w", date, err)
		}
		from, to = date, date
	}
	if from == "" && to == "" {
		return days, nil
	}

	lo := time.Time{}
	hi := timecalc.StartOfDay(now)
	var err error
	if from != "" {
		lo, err = time.ParseInLocation(layout, from, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid --from %q: %w", from, err)
		}
	}
	if to != "" {
		hi, err = time.ParseInLocation(layout, to, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid --to %q: %w", to, err)
		}
	}

	var out []model.DaySummary
	for _, d := range days {
		if d.Date.Before(lo) || d.Date.After(hi) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
