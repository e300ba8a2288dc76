package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggle-timeclock/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status <clock>",
	Short: "Show a clock's current state without toggling",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := nowMinute()

	_, _, eng := mustSetup()

	state, _, err := eng.Status(args[0], now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	report.Status(os.Stdout, state, now, false)
	return nil
}
