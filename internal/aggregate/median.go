package aggregate

import (
	"slices"
	"sort"

	"github.com/sells-group/access-cli/internal/model"
)

// MedianDistanceByRegion groups underserved features by region and ranks the
// regions by median nearest-stop distance, highest first. Features without a
// region or a distance are ignored and regions left with no distances are
// omitted. Equal medians are ordered by region name. Empty input yields an
// empty slice.
func MedianDistanceByRegion(features []*model.Feature, limit int) []model.RegionMedian {
	groups := make(map[string][]float64)
	for _, f := range features {
		if f == nil || f.Region == "" || f.NearestStopDistance == nil {
			continue
		}
		groups[f.Region] = append(groups[f.Region], *f.NearestStopDistance)
	}

	regions := make([]string, 0, len(groups))
	for r := range groups {
		regions = append(regions, r)
	}
	slices.Sort(regions)

	out := make([]model.RegionMedian, 0, len(regions))
	for _, r := range regions {
		m, ok := Median(groups[r])
		if !ok {
			continue
		}
		out = append(out, model.RegionMedian{
			Region:         r,
			MedianDistance: m,
			Count:          len(groups[r]),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MedianDistance > out[j].MedianDistance
	})

	return topN(out, limit)
}

// Median returns the statistical median of values, averaging the two middle
// values for even counts. It reports false for an empty slice. The input is
// not modified.
func Median(values []float64) (float64, bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}
