package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/access-cli/internal/dashboard"
	"github.com/sells-group/access-cli/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Rank regions by underserved area share",
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := initDashboard(cmd.Context(), "data")
		if err != nil {
			return err
		}
		sel, err := selectionFromFlags(cmd, d)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return runSummary(os.Stdout, d, sel, format)
	},
}

func runSummary(w io.Writer, d *dashboard.Dashboard, sel model.Selection, format string) error {
	view, err := d.Intensity(sel)
	if err != nil {
		return err
	}
	return writeOutput(w, format, view.Bars, func(w io.Writer) {
		formatSummaryTable(w, view.Bars)
	})
}

func init() {
	addSelectionFlags(summaryCmd)
	addFormatFlag(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}
