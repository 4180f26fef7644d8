package dataset

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/access-cli/internal/model"
)

// rawFeatureCollection mirrors a GeoJSON FeatureCollection. Geometry is kept
// raw so that features with null geometry or non-string ids still load.
type rawFeatureCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

func readGeoJSONFile(path string, fields model.FieldMap) ([]*model.Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "geojson: open")
	}
	defer f.Close() //nolint:errcheck

	return decodeGeoJSON(f, fields)
}

// decodeGeoJSON parses a GeoJSON FeatureCollection. Numbers in properties are
// kept as json.Number so identifiers survive unchanged.
func decodeGeoJSON(r io.Reader, fields model.FieldMap) ([]*model.Feature, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var fc rawFeatureCollection
	if err := dec.Decode(&fc); err != nil {
		return nil, eris.Wrap(err, "geojson: decode")
	}
	if fc.Type != "FeatureCollection" {
		return nil, eris.Errorf("geojson: expected FeatureCollection, got %q", fc.Type)
	}

	features := make([]*model.Feature, 0, len(fc.Features))
	for i, rf := range fc.Features {
		g, err := decodeGeometry(rf.Geometry)
		if err != nil {
			return nil, eris.Wrapf(err, "geojson: feature %d geometry", i)
		}
		props := rf.Properties
		if props == nil {
			props = map[string]any{}
		}
		features = append(features, model.NewFeature(props, g, fields))
	}
	return features, nil
}

func decodeGeometry(raw json.RawMessage) (geom.T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var g geom.T
	if err := geojson.Unmarshal(trimmed, &g); err != nil {
		return nil, err
	}
	return g, nil
}
