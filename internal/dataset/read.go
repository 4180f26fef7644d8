package dataset

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/access-cli/internal/model"
)

// Supported input extensions.
const (
	extGeoJSON    = ".geojson"
	extJSON       = ".json"
	extShapefile  = ".shp"
	extGeoPackage = ".gpkg"
	extZIP        = ".zip"
	extCSV        = ".csv"
	extXLSX       = ".xlsx"
)

// ReadFeatures parses a feature collection file without caching. The format
// is chosen from the extension: GeoJSON, shapefile, GeoPackage, or a ZIP
// archive holding one of those.
func ReadFeatures(ctx context.Context, path string, fields model.FieldMap) (*model.FeatureCollection, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	var (
		features []*model.Feature
		err      error
	)
	switch ext(path) {
	case extGeoJSON, extJSON:
		features, err = readGeoJSONFile(path, fields)
	case extShapefile:
		features, err = readShapefile(path, fields)
	case extGeoPackage:
		features, err = readGeoPackage(ctx, path, fields)
	case extZIP:
		return readZippedFeatures(ctx, path, fields)
	default:
		err = eris.Errorf("unsupported feature format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &model.FeatureCollection{Path: path, Features: features}, nil
}

// ReadSummary parses a region summary table (CSV or XLSX) without caching.
func ReadSummary(ctx context.Context, path string, columns model.ColumnMap) (*model.SummaryTable, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	var (
		rows []model.RegionSummary
		err  error
	)
	switch ext(path) {
	case extCSV:
		rows, err = readSummaryCSV(ctx, path, columns)
	case extXLSX:
		rows, err = readSummaryXLSX(path, columns)
	default:
		err = eris.Errorf("unsupported table format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &model.SummaryTable{Path: path, Rows: rows}, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{Path: path, Err: err}
		}
		return &ParseError{Path: path, Err: eris.Wrap(err, "stat")}
	}
	if info.IsDir() {
		return &ParseError{Path: path, Err: eris.New("is a directory")}
	}
	return nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
