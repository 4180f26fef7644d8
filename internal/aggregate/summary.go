// Package aggregate computes per-region statistics for the dashboard charts.
package aggregate

import (
	"slices"
	"sort"

	"github.com/sells-group/access-cli/internal/model"
)

// DefaultTopN is the number of regions shown in each ranked chart.
const DefaultTopN = 10

// RegionSummary ranks summary rows by underserved area share, highest first.
// Rows are limited to region unless it is empty or model.AllRegions. Equal
// shares keep input order. A non-positive limit returns every row.
func RegionSummary(rows []model.RegionSummary, region string, limit int) []model.RegionStat {
	all := region == "" || region == model.AllRegions

	stats := make([]model.RegionStat, 0, len(rows))
	for _, r := range rows {
		if !all && r.Region != region {
			continue
		}
		stats = append(stats, model.RegionStat{
			Region:          r.Region,
			UnderservedPct:  r.UnderservedPct(),
			ServedPct:       r.ServedPct,
			TotalArea:       r.TotalArea,
			UnderservedArea: r.UnderservedArea,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].UnderservedPct > stats[j].UnderservedPct
	})

	return topN(stats, limit)
}

// RegionNames returns the sorted, de-duplicated, non-empty region names of
// the summary table.
func RegionNames(rows []model.RegionSummary) []string {
	seen := make(map[string]struct{}, len(rows))
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Region == "" {
			continue
		}
		if _, ok := seen[r.Region]; ok {
			continue
		}
		seen[r.Region] = struct{}{}
		names = append(names, r.Region)
	}
	slices.Sort(names)
	return names
}

func topN[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
