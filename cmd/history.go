package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggle-timeclock/internal/cache"
	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/report"
)

var historyAll bool

var historyCmd = &cobra.Command{
	Use:   "history [clock]",
	Short: "List per-day summary rows",
	Long: `Prints one row per recorded day: initial clock-in | virtual
clock-out | cumulative time. With --all, rows for every clock are read from
the summary cache, which reflects the logs as of each clock's last toggle.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyAll, "all", false, "Show every clock (from the summary cache)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, base, eng := mustSetup()

	if historyAll {
		c, err := cache.Open(base)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		defer c.Close()

		rows, err := c.AllSummaries()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if len(rows) == 0 {
			fmt.Println("No cached summaries yet; toggle a clock first.")
			return nil
		}
		var current string
		var days []model.DaySummary
		flush := func() {
			if current != "" {
				report.ClockHeader(os.Stdout, current)
				report.History(os.Stdout, days)
				days = days[:0]
			}
		}
		for _, r := range rows {
			if r.Clock != current {
				flush()
				current = r.Clock
			}
			days = append(days, r.Summary)
		}
		flush()
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("a clock name is required unless --all is given")
	}

	_, days, err := eng.Status(args[0], nowMinute())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	report.History(os.Stdout, days)
	return nil
}
