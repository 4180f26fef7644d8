package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/access-cli/internal/aggregate"
	"github.com/sells-group/access-cli/internal/dashboard"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", formatTable, "output format: table, json or yaml")
}

// writeOutput renders v as JSON or YAML, or calls table for the table format.
func writeOutput(w io.Writer, format string, v any, table func(io.Writer)) error {
	switch format {
	case formatTable, "":
		table(w)
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "encode json")
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "encode yaml")
		}
		return eris.Wrap(enc.Close(), "encode yaml")
	default:
		return eris.Errorf("unknown format %q", format)
	}
}

func formatSummaryTable(w io.Writer, bars []dashboard.SummaryBar) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tUNDERSERVED\tTOTAL AREA\tUNDERSERVED AREA\tSERVED")
	for _, b := range bars {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			b.Region,
			b.UnderservedPctDisplay,
			b.TotalAreaDisplay,
			b.UnderservedAreaDisplay,
			dashboard.FormatPercent(b.ServedPct),
		)
	}
	tw.Flush() //nolint:errcheck
}

func formatSeverityTable(w io.Writer, view dashboard.SeverityView) {
	if view.Empty {
		fmt.Fprintln(w, "No underserved blocks match the current filters.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tMEDIAN DISTANCE\tBLOCKS")
	for _, b := range view.Bars {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", b.Region, b.DistanceDisplay, b.Count)
	}
	tw.Flush() //nolint:errcheck

	s := view.Severity
	fmt.Fprintf(w, "\n%d underserved blocks, mean %s, max %s\n",
		s.Blocks, dashboard.FormatDistance(s.MeanDistance), dashboard.FormatDistance(s.MaxDistance))
}

func formatCoverageTable(w io.Writer, s aggregate.CoverageStats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Blocks:\t%d\n", s.Blocks)
	fmt.Fprintf(tw, "Served blocks:\t%d\n", s.ServedBlocks)
	fmt.Fprintf(tw, "Served:\t%s\n", dashboard.FormatPercent(s.ServedPct))
	fmt.Fprintf(tw, "Underserved:\t%s\n", dashboard.FormatPercent(s.UnderservedPct))
	fmt.Fprintf(tw, "Mean stops (served):\t%.1f\n", s.MeanStopsServed)
	fmt.Fprintf(tw, "Mean routes (served):\t%.1f\n", s.MeanRoutesServed)
	tw.Flush() //nolint:errcheck
}
