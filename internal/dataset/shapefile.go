package dataset

import (
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/access-cli/internal/model"
)

// dbfNameLen is the maximum dBASE field name length. Longer property names
// are truncated when a layer is exported to shapefile.
const dbfNameLen = 10

// readShapefile reads polygons and attributes from an ESRI shapefile and its
// .dbf sidecar.
func readShapefile(path string, fields model.FieldMap) ([]*model.Feature, error) {
	// go-shp silently reads no attributes when the sidecar is absent.
	dbfPath := path[:len(path)-3] + "dbf"
	if _, err := os.Stat(dbfPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Errorf("shapefile: missing attribute file %s", dbfPath)
		}
		return nil, eris.Wrap(err, "shapefile: stat attribute file")
	}
	if err := checkShapefileLength(path); err != nil {
		return nil, err
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "shapefile: open")
	}
	defer func() { _ = reader.Close() }()

	dbf := reader.Fields()
	names := make([]string, len(dbf))
	for i, f := range dbf {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	// Map each wanted property to its dbf column so properties carry the
	// configured (untruncated) names.
	wanted := []string{fields.Region, fields.LandUse, fields.Meshblock, fields.StopCount, fields.RouteCount, fields.NearestDistance}
	columns := make(map[string]int, len(names))
	for i, n := range names {
		columns[n] = i
	}
	for _, w := range wanted {
		if idx := matchField(names, w); idx >= 0 {
			delete(columns, names[idx])
			columns[w] = idx
		}
	}

	var (
		features []*model.Feature
		skipped  int
	)
	for reader.Next() {
		_, shape := reader.Shape()

		props := make(map[string]any, len(columns))
		for name, idx := range columns {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
			if val == "" {
				props[name] = nil
				continue
			}
			props[name] = val
		}

		g := shapeToGeometry(shape)
		if g == nil {
			skipped++
		}
		features = append(features, model.NewFeature(props, g, fields))
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "shapefile: read record %d", len(features))
	}

	if skipped > 0 {
		zap.L().Debug("dataset: shapefile records without usable geometry",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return features, nil
}

// shpHeaderLen is the fixed size of the main file header. Bytes 24-27 hold
// the file length in 16-bit words, big endian.
const shpHeaderLen = 100

// checkShapefileLength rejects a main file shorter than its header declares,
// which go-shp would otherwise read as a shorter, valid file.
func checkShapefileLength(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return eris.Wrap(err, "shapefile: open")
	}
	defer f.Close() //nolint:errcheck

	header := make([]byte, shpHeaderLen)
	if _, err := io.ReadFull(f, header); err != nil {
		return eris.Wrap(err, "shapefile: read header")
	}
	info, err := f.Stat()
	if err != nil {
		return eris.Wrap(err, "shapefile: stat")
	}
	declared := int64(binary.BigEndian.Uint32(header[24:28])) * 2
	if info.Size() < declared {
		return eris.Errorf("shapefile: truncated: %d of %d bytes", info.Size(), declared)
	}
	return nil
}

// matchField returns the index of the dbf column holding want, tolerating
// the case-folding and name truncation applied by shapefile exports. It
// returns -1 when there is no such column.
func matchField(names []string, want string) int {
	for i, n := range names {
		if strings.EqualFold(n, want) {
			return i
		}
	}
	if len(want) <= dbfNameLen {
		return -1
	}
	lw := strings.ToLower(want)
	for i, n := range names {
		if len(n) >= dbfNameLen && strings.HasPrefix(lw, strings.ToLower(n)) {
			return i
		}
	}
	return -1
}

// shapeToGeometry converts a shapefile shape to a go-geom geometry. Polygons
// become MultiPolygons with one polygon per part. Unsupported or empty
// shapes return nil.
func shapeToGeometry(s shp.Shape) geom.T {
	switch shape := s.(type) {
	case *shp.Polygon:
		return polygonToMultiPolygon(shape)
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{shape.X, shape.Y})
	default:
		return nil
	}
}

func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		if start >= end {
			continue
		}

		flat := make([]float64, 0, 2*(end-start))
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("dataset: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("dataset: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
