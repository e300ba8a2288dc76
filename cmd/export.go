package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggle-timeclock/internal/model"
	"github.com/Tiliavir/toggle-timeclock/internal/timecalc"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <clock>",
	Short: "Export a clock's day summaries to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
}

func runExport(cmd *cobra.Command, args []string) error {
	_, _, eng := mustSetup()

	_, days, err := eng.Status(args[0], nowMinute())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return renderDays(os.Stdout, days, exportFormat)
}

// renderDays writes day summaries in the requested format. Anything other
// than csv or json is an error, not a silent fallback.
func renderDays(w io.Writer, days []model.DaySummary, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(days, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "csv":
		writeCSV(w, days)
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", format)
	}
	return nil
}

func writeCSV(w io.Writer, days []model.DaySummary) {
	fmt.Fprintln(w, "date,initial_clock_in,virtual_clock_out,cumulative_minutes")
	for _, d := range days {
		fmt.Fprintf(w, "%s,%s,%s,%d\n",
			csvEscape(d.Date.Format("2006-01-02")),
			csvEscape(timecalc.FormatStamp(d.InitialClockIn)),
			csvEscape(timecalc.FormatStamp(d.VirtualClockOut)),
			int64(d.Cumulative.Minutes()),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
