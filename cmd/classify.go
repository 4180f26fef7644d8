package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/access-cli/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <stops|distance> <value>",
	Short: "Print the map class for a metric value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassify(os.Stdout, args[0], args[1])
	},
}

func runClassify(w io.Writer, metric, value string) error {
	var bin classify.Bin
	switch metric {
	case classify.MetricStops:
		bin = classify.StopCountValue(value)
	case classify.MetricDistance:
		bin = classify.DistanceValue(value)
	default:
		return eris.Errorf("unknown metric %q (want %s or %s)", metric, classify.MetricStops, classify.MetricDistance)
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", bin.Label, bin.Color)
	return err
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
