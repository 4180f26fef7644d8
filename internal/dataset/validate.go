package dataset

import (
	"slices"

	"github.com/sells-group/access-cli/internal/model"
)

// MissingRegions returns the sorted region names referenced by features but
// absent from the summary table. Features without a region are ignored.
// Region consistency is assumed elsewhere; this is a diagnostic only.
func MissingRegions(fc *model.FeatureCollection, table *model.SummaryTable) []string {
	known := make(map[string]struct{})
	if table != nil {
		for _, r := range table.Rows {
			known[r.Region] = struct{}{}
		}
	}

	missing := make(map[string]struct{})
	if fc != nil {
		for _, f := range fc.Features {
			if f == nil || f.Region == "" {
				continue
			}
			if _, ok := known[f.Region]; !ok {
				missing[f.Region] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(missing))
	for r := range missing {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
