// Package classify maps accessibility metrics to labelled, coloured map classes.
package classify

import (
	"math"

	"github.com/sells-group/access-cli/internal/model"
)

// Bin is a labelled class with an inclusive upper bound.
type Bin struct {
	Label string  `json:"label" yaml:"label"`
	Color string  `json:"color" yaml:"color"`
	Upper float64 `json:"-" yaml:"-"`
}

// NoData is returned for absent or non-numeric metrics.
var NoData = Bin{Label: "No data", Color: "#BDBDBD"}

// Metric names accepted by Legend.
const (
	MetricStops    = "stops"
	MetricDistance = "distance"
)

// StopCountBins classifies bus stops within 400m. The last bin is open-ended.
var StopCountBins = []Bin{
	{Label: "No Stop", Color: "#6B0000", Upper: 0},
	{Label: "1 - 4 Stops", Color: "#D6E3F5", Upper: 4},
	{Label: "4 - 7 Stops", Color: "#AFC6EA", Upper: 7},
	{Label: "7 - 11 Stops", Color: "#6F8FD9", Upper: 11},
	{Label: "11 - 16 Stops", Color: "#2F58C8", Upper: 16},
	{Label: "16 - 25 Stops", Color: "#1737B3", Upper: 25},
	{Label: "25 - 38 Stops", Color: "#4B1FA6", Upper: math.Inf(1)},
}

// DistanceBins classifies nearest-stop distance in metres for underserved
// blocks, which by definition sit beyond 400m.
var DistanceBins = []Bin{
	{Label: "401 - 558 meter", Color: "#FFFFFF", Upper: 558},
	{Label: "558 - 921 meter", Color: "#FAD9D9", Upper: 921},
	{Label: "921 - 1769 meter", Color: "#F5A3A3", Upper: 1769},
	{Label: "1769 - 3525 meter", Color: "#E34A4A", Upper: 3525},
	{Label: "3525 - 12657 meter", Color: "#B30000", Upper: math.Inf(1)},
}

// StopCount returns the stop-count class for v.
func StopCount(v *float64) Bin {
	return lookup(StopCountBins, v)
}

// Distance returns the nearest-stop distance class for v.
func Distance(v *float64) Bin {
	return lookup(DistanceBins, v)
}

// StopCountValue classifies a raw attribute value. Non-numeric input is
// treated as absent.
func StopCountValue(raw any) Bin {
	return StopCount(model.ParseMetric(raw))
}

// DistanceValue classifies a raw attribute value. Non-numeric input is
// treated as absent.
func DistanceValue(raw any) Bin {
	return Distance(model.ParseMetric(raw))
}

// Legend returns the class table for a metric name, or false if unknown.
func Legend(metric string) ([]Bin, bool) {
	switch metric {
	case MetricStops:
		return StopCountBins, true
	case MetricDistance:
		return DistanceBins, true
	default:
		return nil, false
	}
}

// lookup returns the first bin whose upper bound is >= v, falling back to the
// last bin.
func lookup(bins []Bin, v *float64) Bin {
	if v == nil || math.IsNaN(*v) {
		return NoData
	}
	for _, b := range bins {
		if *v <= b.Upper {
			return b
		}
	}
	return bins[len(bins)-1]
}
