// Package filter selects meshblock features by land use and region.
package filter

import "github.com/sells-group/access-cli/internal/model"

// Features returns the features whose land use is selected and whose region
// passes the region filter, in input order. The input slice is not modified.
// An empty land-use selection yields an empty, non-nil slice.
func Features(features []*model.Feature, sel model.Selection) []*model.Feature {
	out := make([]*model.Feature, 0)
	if len(sel.LandUses) == 0 {
		return out
	}
	for _, f := range features {
		if f == nil {
			continue
		}
		if !sel.HasLandUse(f.LandUse) {
			continue
		}
		if !sel.MatchesRegion(f.Region) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Collection filters a loaded feature collection. A nil collection yields an
// empty slice.
func Collection(fc *model.FeatureCollection, sel model.Selection) []*model.Feature {
	if fc == nil {
		return make([]*model.Feature, 0)
	}
	return Features(fc.Features, sel)
}
