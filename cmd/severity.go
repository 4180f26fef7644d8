package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/access-cli/internal/aggregate"
	"github.com/sells-group/access-cli/internal/dashboard"
	"github.com/sells-group/access-cli/internal/model"
)

type severityOutput struct {
	Selection model.Selection         `json:"selection" yaml:"selection"`
	Empty     bool                    `json:"empty" yaml:"empty"`
	Bars      []dashboard.MedianBar   `json:"bars" yaml:"bars"`
	Severity  aggregate.SeverityStats `json:"severity" yaml:"severity"`
}

var severityCmd = &cobra.Command{
	Use:   "severity",
	Short: "Rank regions by median distance to the nearest stop",
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
		return runSeverity(os.Stdout, d, sel, format)
	},
}

func runSeverity(w io.Writer, d *dashboard.Dashboard, sel model.Selection, format string) error {
	view, err := d.Severity(sel)
	if err != nil {
		return err
	}
	out := severityOutput{
		Selection: view.Selection,
		Empty:     view.Empty,
		Bars:      view.Bars,
		Severity:  view.Severity,
	}
	return writeOutput(w, format, out, func(w io.Writer) {
		formatSeverityTable(w, view)
	})
}

func init() {
	addSelectionFlags(severityCmd)
	addFormatFlag(severityCmd)
	rootCmd.AddCommand(severityCmd)
}
