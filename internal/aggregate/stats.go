package aggregate

import "github.com/sells-group/access-cli/internal/model"

// CoverageStats summarises service intensity across a set of catchment blocks.
type CoverageStats struct {
	Blocks           int     `json:"blocks" yaml:"blocks"`
	ServedBlocks     int     `json:"served_blocks" yaml:"served_blocks"`
	ServedPct        float64 `json:"served_pct" yaml:"served_pct"`
	UnderservedPct   float64 `json:"underserved_pct" yaml:"underserved_pct"`
	MeanStopsServed  float64 `json:"mean_stops_served" yaml:"mean_stops_served"`
	MeanRoutesServed float64 `json:"mean_routes_served" yaml:"mean_routes_served"`
}

// SeverityStats summarises nearest-stop distance across underserved blocks.
type SeverityStats struct {
	Blocks       int     `json:"blocks" yaml:"blocks"`
	MeanDistance float64 `json:"mean_distance" yaml:"mean_distance"`
	MaxDistance  float64 `json:"max_distance" yaml:"max_distance"`
}

// Coverage computes block-count coverage for catchment features. A block is
// served when it has at least one stop within the threshold. Blocks with no
// stop count recorded are counted but never served.
func Coverage(features []*model.Feature) CoverageStats {
	var (
		s        CoverageStats
		stopSum  float64
		routeSum float64
		routeN   int
	)
	for _, f := range features {
		if f == nil {
			continue
		}
		s.Blocks++
		if f.StopCount == nil || *f.StopCount <= 0 {
			continue
		}
		s.ServedBlocks++
		stopSum += *f.StopCount
		if f.RouteCount != nil {
			routeSum += *f.RouteCount
			routeN++
		}
	}
	if s.Blocks > 0 {
		s.ServedPct = 100 * float64(s.ServedBlocks) / float64(s.Blocks)
		s.UnderservedPct = 100 - s.ServedPct
	}
	if s.ServedBlocks > 0 {
		s.MeanStopsServed = stopSum / float64(s.ServedBlocks)
	}
	if routeN > 0 {
		s.MeanRoutesServed = routeSum / float64(routeN)
	}
	return s
}

// Severity computes distance statistics over underserved features with a
// recorded distance.
func Severity(features []*model.Feature) SeverityStats {
	var (
		s   SeverityStats
		sum float64
	)
	for _, f := range features {
		if f == nil || f.NearestStopDistance == nil {
			continue
		}
		d := *f.NearestStopDistance
		s.Blocks++
		sum += d
		if s.Blocks == 1 || d > s.MaxDistance {
			s.MaxDistance = d
		}
	}
	if s.Blocks > 0 {
		s.MeanDistance = sum / float64(s.Blocks)
	}
	return s
}
