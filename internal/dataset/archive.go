package dataset

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/access-cli/internal/model"
)

// readZippedFeatures reads an archive holding exactly one feature file. Only
// that file and its sidecars (entries sharing its stem, such as .dbf and
// .shx) are unpacked.
func readZippedFeatures(ctx context.Context, zipPath string, fields model.FieldMap) (*model.FeatureCollection, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, &ParseError{Path: zipPath, Err: eris.Wrap(err, "zip: open archive")}
	}
	defer r.Close() //nolint:errcheck

	dataset, err := featureEntries(r.File)
	if err != nil {
		return nil, &ParseError{Path: zipPath, Err: err}
	}

	dir, err := os.MkdirTemp("", "access-dataset-*")
	if err != nil {
		return nil, &ParseError{Path: zipPath, Err: eris.Wrap(err, "zip: create temp dir")}
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	var main string
	for i, f := range dataset {
		dest := filepath.Join(dir, filepath.FromSlash(path.Base(f.Name)))
		if err := unpack(f, dest); err != nil {
			return nil, &ParseError{Path: zipPath, Err: err}
		}
		if i == 0 {
			main = dest
		}
	}

	fc, err := ReadFeatures(ctx, main, fields)
	if err != nil {
		return nil, &ParseError{Path: zipPath, Err: err}
	}
	fc.Path = zipPath
	return fc, nil
}

// featureEntries returns the archive's single feature file followed by its
// sidecars. Entry names that would leave the extraction directory are
// rejected.
func featureEntries(files []*zip.File) ([]*zip.File, error) {
	var feature *zip.File
	found := 0
	for _, f := range files {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return nil, eris.Errorf("zip: illegal path %q", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		switch ext(f.Name) {
		case extGeoJSON, extJSON, extShapefile, extGeoPackage:
			feature = f
			found++
		}
	}
	if found != 1 {
		return nil, eris.Errorf("zip: expected exactly 1 feature file, got %d", found)
	}

	stem := strings.TrimSuffix(feature.Name, path.Ext(feature.Name))
	entries := []*zip.File{feature}
	for _, f := range files {
		if f == feature || f.FileInfo().IsDir() {
			continue
		}
		if strings.EqualFold(strings.TrimSuffix(f.Name, path.Ext(f.Name)), stem) {
			entries = append(entries, f)
		}
	}
	return entries, nil
}

func unpack(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return eris.Wrapf(err, "zip: open entry %s", f.Name)
	}
	defer src.Close() //nolint:errcheck

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return eris.Wrapf(err, "zip: create %s", filepath.Base(dest))
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return eris.Wrapf(err, "zip: unpack %s", f.Name)
	}
	return eris.Wrap(out.Close(), "zip: close unpacked file")
}
