package dashboard

import (
	"github.com/sells-group/access-cli/internal/aggregate"
	"github.com/sells-group/access-cli/internal/classify"
	"github.com/sells-group/access-cli/internal/filter"
	"github.com/sells-group/access-cli/internal/model"
)

// MapFeature is a filtered feature with the class that styles it.
type MapFeature struct {
	Feature *model.Feature `json:"feature"`
	Bin     classify.Bin   `json:"bin"`
}

// TooltipField pairs a feature property with its tooltip caption.
type TooltipField struct {
	Field string `json:"field"`
	Alias string `json:"alias"`
}

// SummaryBar is one bar of the percent-underserved chart.
type SummaryBar struct {
	model.RegionStat       `yaml:",inline"`
	UnderservedPctDisplay  string `json:"underserved_pct_display" yaml:"underserved_pct_display"`
	TotalAreaDisplay       string `json:"total_area_display" yaml:"total_area_display"`
	UnderservedAreaDisplay string `json:"underserved_area_display" yaml:"underserved_area_display"`
}

// MedianBar is one bar of the median-distance chart.
type MedianBar struct {
	model.RegionMedian `yaml:",inline"`
	DistanceDisplay    string `json:"distance_display" yaml:"distance_display"`
}

// IntensityView is the Service Intensity tab.
type IntensityView struct {
	Selection model.Selection         `json:"selection"`
	Features  []MapFeature            `json:"-"`
	Bars      []SummaryBar            `json:"bars"`
	Coverage  aggregate.CoverageStats `json:"coverage"`
	Tooltip   []TooltipField          `json:"tooltip"`
	Legend    []classify.Bin          `json:"legend"`
}

// SeverityView is the Underserved Severity tab. Empty means no underserved
// blocks match the selection, which is a normal outcome.
type SeverityView struct {
	Selection model.Selection         `json:"selection"`
	Features  []MapFeature            `json:"-"`
	Bars      []MedianBar             `json:"bars"`
	Severity  aggregate.SeverityStats `json:"severity"`
	Empty     bool                    `json:"empty"`
	Tooltip   []TooltipField          `json:"tooltip"`
	Legend    []classify.Bin          `json:"legend"`
}

// Intensity builds the Service Intensity view for sel.
func (d *Dashboard) Intensity(sel model.Selection) (IntensityView, error) {
	if !d.Loaded() {
		return IntensityView{}, ErrNotLoaded
	}

	features := filter.Collection(d.catchment, sel)
	mapped := make([]MapFeature, len(features))
	for i, f := range features {
		mapped[i] = MapFeature{Feature: f, Bin: classify.StopCount(f.StopCount)}
	}

	stats := aggregate.RegionSummary(d.summary.Rows, sel.Region, d.data.TopN)
	bars := make([]SummaryBar, len(stats))
	for i, s := range stats {
		bars[i] = SummaryBar{
			RegionStat:             s,
			UnderservedPctDisplay:  FormatPercent(s.UnderservedPct),
			TotalAreaDisplay:       FormatArea(s.TotalArea),
			UnderservedAreaDisplay: FormatArea(s.UnderservedArea),
		}
	}

	f := d.data.Fields
	return IntensityView{
		Selection: sel,
		Features:  mapped,
		Bars:      bars,
		Coverage:  aggregate.Coverage(features),
		Tooltip: []TooltipField{
			{Field: f.Region, Alias: "LGA"},
			{Field: f.LandUse, Alias: "Land use"},
			{Field: f.StopCount, Alias: "Stops within 400m"},
			{Field: f.RouteCount, Alias: "Routes within 400m"},
		},
		Legend: classify.StopCountBins,
	}, nil
}

// Severity builds the Underserved Severity view for sel.
func (d *Dashboard) Severity(sel model.Selection) (SeverityView, error) {
	if !d.Loaded() {
		return SeverityView{}, ErrNotLoaded
	}

	features := filter.Collection(d.underserved, sel)
	mapped := make([]MapFeature, len(features))
	for i, f := range features {
		mapped[i] = MapFeature{Feature: f, Bin: classify.Distance(f.NearestStopDistance)}
	}

	medians := aggregate.MedianDistanceByRegion(features, d.data.TopN)
	bars := make([]MedianBar, len(medians))
	for i, m := range medians {
		bars[i] = MedianBar{RegionMedian: m, DistanceDisplay: FormatDistance(m.MedianDistance)}
	}

	f := d.data.Fields
	return SeverityView{
		Selection: sel,
		Features:  mapped,
		Bars:      bars,
		Severity:  aggregate.Severity(features),
		Empty:     len(features) == 0,
		Tooltip: []TooltipField{
			{Field: f.Region, Alias: "LGA"},
			{Field: f.LandUse, Alias: "Land use"},
			{Field: f.Meshblock, Alias: "Meshblock"},
			{Field: f.NearestDistance, Alias: "Nearest stop distance (m)"},
		},
		Legend: classify.DistanceBins,
	}, nil
}
