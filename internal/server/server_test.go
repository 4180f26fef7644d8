package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/access-cli/internal/config"
	"github.com/sells-group/access-cli/internal/dashboard"
	"github.com/sells-group/access-cli/internal/dataset"
	"github.com/sells-group/access-cli/internal/model"
)

const catchmentJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","geometry":{"type":"Point","coordinates":[144.1,-37.1]},
  "properties":{"LGA_NAME_2021":"X","MB_CAT21":"Industrial","MB_CODE21":"1","STOPS_WITHIN_400M":0}},
 {"type":"Feature","geometry":{"type":"Point","coordinates":[144.2,-37.2]},
  "properties":{"LGA_NAME_2021":"Y","MB_CAT21":"Primary Production","MB_CODE21":"2","STOPS_WITHIN_400M":12}},
 {"type":"Feature","geometry":{"type":"Point","coordinates":[144.3,-37.3]},
  "properties":{"LGA_NAME_2021":"X","MB_CAT21":"Industrial","MB_CODE21":"3","STOPS_WITHIN_400M":5}}
]}`

const underservedJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","geometry":null,"properties":{"LGA_NAME_2021":"X","MB_CAT21":"Industrial","MB_CODE21":"10","NEAREST_DISTANCE_STOP":900}},
 {"type":"Feature","geometry":null,"properties":{"LGA_NAME_2021":"Y","MB_CAT21":"Primary Production","MB_CODE21":"11","NEAREST_DISTANCE_STOP":4000}}
]}`

const summaryCSV = "LGA_NAME_2021,TOTAL_AREA_SIZE,UNDERSERVED_AREA,SERVED_AREA_PCT\nX,10,2,80\nY,20,15,25\n"

func newTestServer(t *testing.T, srvCfg config.ServerConfig) http.Handler {
	t.Helper()
	return newServerWithData(t, srvCfg, catchmentJSON, underservedJSON)
}

func newServerWithData(t *testing.T, srvCfg config.ServerConfig, catchment, underserved string) http.Handler {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	data := config.DataConfig{
		Catchment:   write("catchment.geojson", catchment),
		Underserved: write("underserved.geojson", underserved),
		Summary:     write("lga.csv", summaryCSV),
		TopN:        10,
		Fields:      model.DefaultFieldMap(),
		Columns:     model.DefaultColumnMap(),
	}
	d := dashboard.New(dataset.NewCache(data.Fields, data.Columns), data, config.MapConfig{Zoom: 9})
	require.NoError(t, d.Load(context.Background()))

	if srvCfg.CORSOrigins == nil {
		srvCfg.CORSOrigins = []string{"*"}
	}
	return New(d, srvCfg).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["loaded"])
}

func TestRequestID_Preserved(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestOptions(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/api/options")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts dashboard.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"All", "X", "Y"}, opts.Regions)
	assert.Equal(t, model.LandUses(), opts.LandUses)
}

func TestLegend(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/api/legend/distance")
	require.Equal(t, http.StatusOK, rec.Code)
	bins, ok := decode(t, rec)["bins"].([]any)
	require.True(t, ok)
	assert.Len(t, bins, 5)

	rec = get(t, h, "/api/legend/speed")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "speed")
}

func TestIntensity_Selection(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	tests := []struct {
		name     string
		target   string
		status   int
		features float64
	}{
		{name: "defaults", target: "/api/intensity", status: http.StatusOK, features: 3},
		{name: "industrial", target: "/api/intensity?landuse=Industrial", status: http.StatusOK, features: 2},
		{name: "comma list", target: "/api/intensity?landuse=Industrial,Primary%20Production", status: http.StatusOK, features: 3},
		{name: "region", target: "/api/intensity?region=Y", status: http.StatusOK, features: 1},
		{name: "explicit all", target: "/api/intensity?region=All&landuse=Industrial", status: http.StatusOK, features: 2},
		{name: "no land use", target: "/api/intensity?landuse=", status: http.StatusOK, features: 0},
		{name: "unknown land use", target: "/api/intensity?landuse=Residential", status: http.StatusBadRequest},
		{name: "unknown region", target: "/api/intensity?region=Nowhere", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decode(t, rec)
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, body["error"])
				return
			}
			assert.Equal(t, tt.features, body["feature_count"])
		})
	}
}

func TestIntensity_Bars(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/api/intensity")
	require.Equal(t, http.StatusOK, rec.Code)

	bars, ok := decode(t, rec)["bars"].([]any)
	require.True(t, ok)
	require.Len(t, bars, 2)
	first := bars[0].(map[string]any)
	assert.Equal(t, "Y", first["region"])
	assert.Equal(t, "75.0%", first["underserved_pct_display"])
}

func TestIntensityMap(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/api/intensity/map.geojson?landuse=Industrial")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, "FeatureCollection", body["type"])
	features, ok := body["features"].([]any)
	require.True(t, ok)
	require.Len(t, features, 2)
	props := features[0].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "#6B0000", props["fillColor"])
}

func TestSeverity(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/api/severity?landuse=Industrial")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["empty"])
	assert.Equal(t, float64(1), body["feature_count"])

	rec = get(t, h, "/api/severity?landuse=Primary%20Production&region=X")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, true, body["empty"])
	assert.Equal(t, float64(0), body["feature_count"])
}

func TestSeverityMap(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/api/severity/map.geojson")
	require.Equal(t, http.StatusOK, rec.Code)
	features, ok := decode(t, rec)["features"].([]any)
	require.True(t, ok)
	assert.Len(t, features, 2)
}

func TestCache(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/api/cache")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["collections"])
}

func TestNotFound(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	rec := get(t, h, "/api/nothing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decode(t, rec)["error"])
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{RateLimit: 0.001, Burst: 1})

	assert.Equal(t, http.StatusOK, get(t, h, "/health").Code)

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, config.ServerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"distance": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decode(t, rec)["error"])
}

func TestSeverity_NonFiniteDistance(t *testing.T) {
	underserved := `{"type":"FeatureCollection","features":[
 {"type":"Feature","geometry":null,"properties":{"LGA_NAME_2021":"X","MB_CAT21":"Industrial","MB_CODE21":"10","NEAREST_DISTANCE_STOP":"Infinity"}},
 {"type":"Feature","geometry":null,"properties":{"LGA_NAME_2021":"X","MB_CAT21":"Industrial","MB_CODE21":"11","NEAREST_DISTANCE_STOP":700}}
]}`
	h := newServerWithData(t, config.ServerConfig{}, catchmentJSON, underserved)

	rec := get(t, h, "/api/severity")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["feature_count"])

	bars, ok := body["bars"].([]any)
	require.True(t, ok)
	require.Len(t, bars, 1)
	assert.InDelta(t, 700.0, bars[0].(map[string]any)["median_distance"], 1e-9)

	rec = get(t, h, "/api/severity/map.geojson")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data")
}
