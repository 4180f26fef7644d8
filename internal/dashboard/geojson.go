package dashboard

import (
	"encoding/json"
	"maps"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Map layer styling shared by both views: filled polygons without outline.
const (
	fillOpacity = 0.75
	strokeWidth = 0
)

// MapGeoJSON encodes styled features as a GeoJSON FeatureCollection. Each
// feature keeps its source properties and gains fillColor, fillOpacity,
// weight and bin.
func MapGeoJSON(features []MapFeature) ([]byte, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(features))}
	for _, mf := range features {
		props := make(map[string]any, len(mf.Feature.Properties)+4)
		maps.Copy(props, mf.Feature.Properties)
		props["fillColor"] = mf.Bin.Color
		props["fillOpacity"] = fillOpacity
		props["weight"] = strokeWidth
		props["bin"] = mf.Bin.Label

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         mf.Feature.MeshblockID,
			Geometry:   mf.Feature.Geometry,
			Properties: props,
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "dashboard: encode geojson")
	}
	return data, nil
}
