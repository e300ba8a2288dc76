package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggle-timeclock/internal/cache"
	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/report"
)

var toggleNoHistory bool

var toggleCmd = &cobra.Command{
	Use:   "toggle <clock>",
	Short: "Clock in or out of the named clock",
	Long: `Flips the clock between in and out and prints the running report.
A toggle within the debounce window of the previous entry is ignored and the
unchanged report is shown, so toggling twice quickly is a safe way to check
the current state. Clocking in clocks out any sibling clock that is in.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	toggleCmd.Flags().BoolVar(&toggleNoHistory, "no-history", false, "Skip the per-day history prompt")
}

func runToggle(cmd *cobra.Command, args []string) error {
	name := args[0]
	now := nowMinute()

	_, base, eng := mustSetup()

	res, err := eng.Toggle(name, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if !res.Debounced {
		refreshCache(base, name, res.Days)
	}

	report.Status(os.Stdout, res.State, now, res.Debounced)

	if toggleNoHistory || !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}
	fmt.Print("\npress Enter for the per-day history... ")
	if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
		return nil
	}
	report.History(os.Stdout, res.Days)
	return nil
}

// refreshCache rebuilds the toggled clock's rows in the summary cache. The
// cache is advisory, so failures only warn.
func refreshCache(base, clockName string, days []model.DaySummary) {
	c, err := cache.Open(base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: summary cache unavailable: %v\n", err)
		return
	}
	defer c.Close()
	if err := c.ReplaceClock(clockName, days); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not refresh summary cache: %v\n", err)
	}
}
