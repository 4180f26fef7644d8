package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"float64", 12.5, Float(12.5)},
		{"int", 3, Float(3)},
		{"int64", int64(7), Float(7)},
		{"json number", json.Number("558.01"), Float(558.01)},
		{"numeric string", " 921 ", Float(921)},
		{"empty string", "", nil},
		{"non-numeric string", "abc", nil},
		{"nan", math.NaN(), nil},
		{"positive infinity", math.Inf(1), nil},
		{"negative infinity", math.Inf(-1), nil},
		{"infinity string", "Infinity", nil},
		{"inf string", "-inf", nil},
		{"infinity json number", json.Number("1e400"), nil},
		{"bytes", []byte("4"), Float(4)},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMetric(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestParseIdentifier(t *testing.T) {
	assert.Equal(t, "20664190000", ParseIdentifier(float64(20664190000)))
	assert.Equal(t, "20664190000", ParseIdentifier(" 20664190000 "))
	assert.Equal(t, "42", ParseIdentifier(int64(42)))
	assert.Equal(t, "", ParseIdentifier(nil))
}

func TestNewFeature(t *testing.T) {
	props := map[string]any{
		"LGA_NAME_2021":      "Wyndham",
		"MB_CAT21":           "Industrial",
		"MB_CODE21":          float64(20123450000),
		"STOPS_WITHIN_400M":  float64(5),
		"ROUTES_WITHIN_400M": "2",
	}
	g := geom.NewPointFlat(geom.XY, []float64{144.9, -37.8})

	f := NewFeature(props, g, DefaultFieldMap())

	assert.Equal(t, "Wyndham", f.Region)
	assert.Equal(t, LandUseIndustrial, f.LandUse)
	assert.Equal(t, "20123450000", f.MeshblockID)
	require.NotNil(t, f.StopCount)
	assert.InDelta(t, 5.0, *f.StopCount, 1e-9)
	require.NotNil(t, f.RouteCount)
	assert.InDelta(t, 2.0, *f.RouteCount, 1e-9)
	assert.Nil(t, f.NearestStopDistance)
	assert.Same(t, g, f.Geometry)
}

func TestNewFeature_NonStringRegion(t *testing.T) {
	f := NewFeature(map[string]any{"LGA_NAME_2021": 12.0}, nil, DefaultFieldMap())
	assert.Empty(t, f.Region)
	assert.Empty(t, f.LandUse)
}

func TestIsLandUse(t *testing.T) {
	assert.True(t, IsLandUse("Industrial"))
	assert.True(t, IsLandUse("Primary Production"))
	assert.False(t, IsLandUse("Residential"))
	assert.False(t, IsLandUse(""))
}

func TestFeatureCollection_Len(t *testing.T) {
	var fc *FeatureCollection
	assert.Equal(t, 0, fc.Len())
	fc = &FeatureCollection{Features: []*Feature{{}, {}}}
	assert.Equal(t, 2, fc.Len())
}
