package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const catchmentGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": 7,
     "geometry": {"type": "Polygon", "coordinates": [[[144.9,-37.8],[145.0,-37.8],[145.0,-37.7],[144.9,-37.8]]]},
     "properties": {"LGA_NAME_2021": "X", "MB_CAT21": "Industrial", "MB_CODE21": 20664190000, "STOPS_WITHIN_400M": 5, "ROUTES_WITHIN_400M": 2}},
    {"type": "Feature",
     "geometry": null,
     "properties": {"LGA_NAME_2021": "Y", "MB_CAT21": "Primary Production", "MB_CODE21": "20664190001", "STOPS_WITHIN_400M": null}},
    {"type": "Feature",
     "geometry": {"type": "Point", "coordinates": [144.95, -37.75]},
     "properties": {"LGA_NAME_2021": "X", "MB_CAT21": "Industrial", "MB_CODE21": 20664190002, "STOPS_WITHIN_400M": "abc"}}
  ]
}`

const summaryCSV = "LGA_NAME_2021,TOTAL_AREA_SIZE,UNDERSERVED_AREA,SERVED_AREA_PCT\n" +
	"X,12.5,10.0,20\n" +
	"Y,3.25,0.5,84.6\n" +
	",1,1,1\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
