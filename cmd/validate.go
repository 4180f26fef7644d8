package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/access-cli/internal/dashboard"
	"github.com/sells-group/access-cli/internal/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load every dataset and report region mismatches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := initDashboard(cmd.Context(), "data")
		if err != nil {
			return err
		}
		runValidate(os.Stdout, d)
		return nil
	},
}

// runValidate reports dataset sizes and feature regions the summary table
// does not cover. Mismatches are reported, not treated as failures.
func runValidate(w io.Writer, d *dashboard.Dashboard) {
	fmt.Fprintf(w, "catchment:   %d features (%s)\n", d.Catchment().Len(), d.Catchment().Path)
	fmt.Fprintf(w, "underserved: %d features (%s)\n", d.Underserved().Len(), d.Underserved().Path)
	fmt.Fprintf(w, "summary:     %d regions (%s)\n", len(d.Summary().Rows), d.Summary().Path)

	report := func(name string, missing []string) {
		if len(missing) == 0 {
			fmt.Fprintf(w, "%s: all regions present in summary table\n", name)
			return
		}
		fmt.Fprintf(w, "%s: %d regions missing from summary table\n", name, len(missing))
		for _, r := range missing {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	report("catchment", dataset.MissingRegions(d.Catchment(), d.Summary()))
	report("underserved", dataset.MissingRegions(d.Underserved(), d.Summary()))
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
