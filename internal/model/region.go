package model

// ColumnMap names the summary table columns the loader reads.
type ColumnMap struct {
	Region          string `yaml:"region" mapstructure:"region" validate:"required"`
	TotalArea       string `yaml:"total_area" mapstructure:"total_area" validate:"required"`
	UnderservedArea string `yaml:"underserved_area" mapstructure:"underserved_area" validate:"required"`
	ServedPct       string `yaml:"served_pct" mapstructure:"served_pct" validate:"required"`
}

// DefaultColumnMap returns the column names of lga_access_metrics.csv.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Region:          "LGA_NAME_2021",
		TotalArea:       "TOTAL_AREA_SIZE",
		UnderservedArea: "UNDERSERVED_AREA",
		ServedPct:       "SERVED_AREA_PCT",
	}
}

// RegionSummary is one row of the per-LGA coverage table. Areas are km².
type RegionSummary struct {
	Region          string  `json:"region"`
	TotalArea       float64 `json:"total_area"`
	UnderservedArea float64 `json:"underserved_area"`
	ServedPct       float64 `json:"served_pct"`
}

// UnderservedPct is the share of land area outside the walking threshold.
func (r RegionSummary) UnderservedPct() float64 {
	return 100 - r.ServedPct
}

// SummaryTable is a parsed region summary file.
type SummaryTable struct {
	Path string          `json:"path"`
	Rows []RegionSummary `json:"rows"`
}

// RegionStat is a region summary row ranked by underserved share.
type RegionStat struct {
	Region          string  `json:"region" yaml:"region"`
	UnderservedPct  float64 `json:"underserved_pct" yaml:"underserved_pct"`
	ServedPct       float64 `json:"served_pct" yaml:"served_pct"`
	TotalArea       float64 `json:"total_area" yaml:"total_area"`
	UnderservedArea float64 `json:"underserved_area" yaml:"underserved_area"`
}

// RegionMedian is the median nearest-stop distance of a region's underserved blocks.
type RegionMedian struct {
	Region         string  `json:"region" yaml:"region"`
	MedianDistance float64 `json:"median_distance" yaml:"median_distance"`
	Count          int     `json:"count" yaml:"count"`
}
