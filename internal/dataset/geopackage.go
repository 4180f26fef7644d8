package dataset

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	_ "modernc.org/sqlite"

	"github.com/sells-group/access-cli/internal/model"
)

// gpkgEnvelopeSizes maps the GeoPackage envelope indicator to its byte size.
var gpkgEnvelopeSizes = map[byte]int{0: 0, 1: 32, 2: 48, 3: 48, 4: 64}

// readGeoPackage reads the first feature table of an OGC GeoPackage.
func readGeoPackage(ctx context.Context, path string, fields model.FieldMap) ([]*model.Feature, error) {
	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "gpkg: open")
	}
	defer db.Close() //nolint:errcheck

	var table, geomCol string
	err = db.QueryRowContext(ctx, `
		SELECT c.table_name, g.column_name
		FROM gpkg_contents c
		JOIN gpkg_geometry_columns g ON g.table_name = c.table_name
		WHERE c.data_type = 'features'
		ORDER BY c.table_name
		LIMIT 1`).Scan(&table, &geomCol)
	if err == sql.ErrNoRows {
		return nil, eris.New("gpkg: no feature table")
	}
	if err != nil {
		return nil, eris.Wrap(err, "gpkg: find feature table")
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, eris.Wrapf(err, "gpkg: query %s", table)
	}
	defer rows.Close() //nolint:errcheck

	cols, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "gpkg: columns")
	}

	var features []*model.Feature
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, eris.Wrap(err, "gpkg: scan row")
		}

		var g geom.T
		props := make(map[string]any, len(cols)-1)
		for i, col := range cols {
			if strings.EqualFold(col, geomCol) {
				blob, _ := values[i].([]byte)
				g, err = decodeGPKGGeometry(blob)
				if err != nil {
					return nil, eris.Wrapf(err, "gpkg: row %d geometry", len(features))
				}
				continue
			}
			props[col] = values[i]
		}
		features = append(features, model.NewFeature(props, g, fields))
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "gpkg: iterate rows")
	}
	return features, nil
}

// decodeGPKGGeometry decodes a GeoPackage geometry blob: a "GP" header with
// optional envelope followed by standard WKB. Nil and empty blobs decode to
// a nil geometry.
func decodeGPKGGeometry(blob []byte) (geom.T, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	if len(blob) < 8 || blob[0] != 'G' || blob[1] != 'P' {
		return nil, eris.New("gpkg: bad geometry header")
	}

	flags := blob[3]
	if flags&0x10 != 0 {
		return nil, nil
	}
	envSize, ok := gpkgEnvelopeSizes[(flags>>1)&0x07]
	if !ok {
		return nil, eris.Errorf("gpkg: invalid envelope indicator %d", (flags>>1)&0x07)
	}
	start := 8 + envSize
	if len(blob) <= start {
		return nil, eris.New("gpkg: truncated geometry")
	}

	g, err := wkb.Unmarshal(blob[start:])
	if err != nil {
		return nil, eris.Wrap(err, "gpkg: decode wkb")
	}
	return g, nil
}

// readOnlyDSN builds a read-only SQLite URI for path, percent-escaping
// characters such as '?' and '#' that URI syntax would otherwise consume.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", eris.Wrap(err, "gpkg: resolve path")
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
