package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// Land-use categories present in the meshblock datasets.
const (
	LandUseIndustrial        = "Industrial"
	LandUsePrimaryProduction = "Primary Production"
)

// LandUses returns the fixed land-use enumeration in display order.
func LandUses() []string {
	return []string{LandUseIndustrial, LandUsePrimaryProduction}
}

// IsLandUse reports whether s is one of the known land-use categories.
func IsLandUse(s string) bool {
	for _, lu := range LandUses() {
		if lu == s {
			return true
		}
	}
	return false
}

// FieldMap names the feature properties the loader reads.
type FieldMap struct {
	Region          string `yaml:"region" mapstructure:"region" validate:"required"`
	LandUse         string `yaml:"land_use" mapstructure:"land_use" validate:"required"`
	Meshblock       string `yaml:"meshblock" mapstructure:"meshblock" validate:"required"`
	StopCount       string `yaml:"stop_count" mapstructure:"stop_count" validate:"required"`
	RouteCount      string `yaml:"route_count" mapstructure:"route_count" validate:"required"`
	NearestDistance string `yaml:"nearest_distance" mapstructure:"nearest_distance" validate:"required"`
}

// DefaultFieldMap returns the property names used by the 2021 meshblock exports.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		Region:          "LGA_NAME_2021",
		LandUse:         "MB_CAT21",
		Meshblock:       "MB_CODE21",
		StopCount:       "STOPS_WITHIN_400M",
		RouteCount:      "ROUTES_WITHIN_400M",
		NearestDistance: "NEAREST_DISTANCE_STOP",
	}
}

// Feature is a meshblock polygon with its precomputed accessibility metrics.
// Metrics that were not recorded are nil. Features are not modified after load.
type Feature struct {
	MeshblockID         string         `json:"meshblock_id"`
	Region              string         `json:"region"`
	LandUse             string         `json:"land_use"`
	StopCount           *float64       `json:"stop_count,omitempty"`
	RouteCount          *float64       `json:"route_count,omitempty"`
	NearestStopDistance *float64       `json:"nearest_stop_distance,omitempty"`
	Geometry            geom.T         `json:"-"`
	Properties          map[string]any `json:"-"`
}

// NewFeature builds a typed Feature from a raw attribute map.
func NewFeature(props map[string]any, g geom.T, fields FieldMap) *Feature {
	return &Feature{
		MeshblockID:         ParseIdentifier(props[fields.Meshblock]),
		Region:              parseString(props[fields.Region]),
		LandUse:             parseString(props[fields.LandUse]),
		StopCount:           ParseMetric(props[fields.StopCount]),
		RouteCount:          ParseMetric(props[fields.RouteCount]),
		NearestStopDistance: ParseMetric(props[fields.NearestDistance]),
		Geometry:            g,
		Properties:          props,
	}
}

// FeatureCollection is a parsed feature file.
type FeatureCollection struct {
	Path     string     `json:"path"`
	Features []*Feature `json:"features"`
}

// Len returns the number of features, tolerating a nil collection.
func (fc *FeatureCollection) Len() int {
	if fc == nil {
		return 0
	}
	return len(fc.Features)
}

// ParseMetric converts a raw attribute value into a metric. Numbers and
// numeric strings parse; nil, empty, non-numeric, NaN and infinite values
// are absent.
func ParseMetric(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case *float64:
		if x == nil {
			return nil
		}
		f = *x
	case interface{ Float64() (float64, error) }:
		parsed, err := x.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	case []byte:
		return ParseMetric(string(x))
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseIdentifier renders an identifier attribute as a string. Numeric
// identifiers are written without exponent or trailing zeros.
func ParseIdentifier(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case interface{ String() string }:
		return strings.TrimSpace(x.String())
	default:
		if m := ParseMetric(v); m != nil {
			return strconv.FormatFloat(*m, 'f', -1, 64)
		}
		return ""
	}
}

func parseString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	default:
		return ""
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
