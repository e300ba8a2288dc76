package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/storage"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

var clocksCmd = &cobra.Command{
	Use:   "clocks",
	Short: "List sibling clocks and their current direction",
	Args:  cobra.NoArgs,
	RunE:  runClocks,
}

func runClocks(cmd *cobra.Command, args []string) error {
	now := nowMinute()

	_, base, eng := mustSetup()

	names, err := storage.ListSiblingClocks(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(names) == 0 {
		fmt.Println("No clocks yet. Create one with: ttc toggle <name>")
		return nil
	}

	for _, name := range names {
		state, _, err := eng.Status(name, now)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if state.Direction == model.DirectionIn {
			fmt.Printf("%s\tin since %s (%s)\n", name,
				timecalc.FormatStamp(state.SessionStart),
				timecalc.FormatDuration(now.Sub(state.SessionStart)))
			continue
		}
		fmt.Printf("%s\tout\n", name)
	}
	return nil
}
