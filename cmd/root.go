package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggle-timeclock/internal/clock"
	"github.com/Tiliavir/toggle-timeclock/internal/config"
	"github.com/Tiliavir/toggle-timeclock/internal/storage"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

var rootCmd = &cobra.Command{
	Use:   "ttc",
	Short: "toggle timeclock – a stopwatch that works without staying open",
	Long: `ttc is a single-binary, file-based time-tracking toggle.
One invocation clocks you in or out of a named clock; intervals shorter than
the debounce window are ignored so you can toggle just to see the report.
All data is stored as plain-text event logs in ~/.ttc/<clock>_data/.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(clocksCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
}

// nowMinute returns the current wall-clock time at the log's minute
// resolution, so displayed projections never drift from what the log can
// record.
func nowMinute() time.Time {
	return timecalc.TruncateMinute(time.Now())
}

// mustSetup loads config and returns it with the resolved base directory and
// an engine over it. Failures are fatal; storage problems exit 2.
func mustSetup() (config.Config, string, *clock.Engine) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	base := cfg.DataDir
	if base == "" {
		base, err = storage.BaseDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	eng := clock.NewEngine(base, time.Duration(cfg.DebounceMinutes)*time.Minute)
	return cfg, base, eng
}
