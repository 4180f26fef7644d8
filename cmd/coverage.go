package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/access-cli/internal/dashboard"
	"github.com/sells-group/access-cli/internal/model"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Show stop coverage for the filtered catchment blocks",
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
		return runCoverage(os.Stdout, d, sel, format)
	},
}

func runCoverage(w io.Writer, d *dashboard.Dashboard, sel model.Selection, format string) error {
	view, err := d.Intensity(sel)
	if err != nil {
		return err
	}
	return writeOutput(w, format, view.Coverage, func(w io.Writer) {
		formatCoverageTable(w, view.Coverage)
	})
}

func init() {
	addSelectionFlags(coverageCmd)
	addFormatFlag(coverageCmd)
	rootCmd.AddCommand(coverageCmd)
}
