package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/access-cli/internal/model"
)

// tableIndex holds the positions of the summary columns in a header row.
type tableIndex struct {
	region, total, underserved, served int
}

func indexHeader(header []string, columns model.ColumnMap) (tableIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	lookup := func(name string) (int, error) {
		i, ok := pos[strings.ToLower(name)]
		if !ok {
			return -1, eris.Errorf("table: missing column %q", name)
		}
		return i, nil
	}

	var (
		idx tableIndex
		err error
	)
	if idx.region, err = lookup(columns.Region); err != nil {
		return idx, err
	}
	if idx.total, err = lookup(columns.TotalArea); err != nil {
		return idx, err
	}
	if idx.underserved, err = lookup(columns.UnderservedArea); err != nil {
		return idx, err
	}
	if idx.served, err = lookup(columns.ServedPct); err != nil {
		return idx, err
	}
	return idx, nil
}

// parseRow converts one data row. ok is false for rows without a region,
// which are skipped. line is 1-based for error messages.
func (idx tableIndex) parseRow(record []string, line int, columns model.ColumnMap) (model.RegionSummary, bool, error) {
	cell := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	row := model.RegionSummary{Region: cell(idx.region)}
	if row.Region == "" {
		return row, false, nil
	}

	for _, c := range []struct {
		name string
		pos  int
		dst  *float64
	}{
		{columns.TotalArea, idx.total, &row.TotalArea},
		{columns.UnderservedArea, idx.underserved, &row.UnderservedArea},
		{columns.ServedPct, idx.served, &row.ServedPct},
	} {
		v, err := strconv.ParseFloat(cell(c.pos), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return row, false, eris.Errorf("table: line %d: column %s: invalid number %q", line, c.name, cell(c.pos))
		}
		*c.dst = v
	}
	return row, true, nil
}

func readSummaryCSV(ctx context.Context, path string, columns model.ColumnMap) ([]model.RegionSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open")
	}
	defer f.Close() //nolint:errcheck

	return decodeSummaryCSV(ctx, f, columns)
}

// decodeSummaryCSV parses a header-first CSV summary table. A leading UTF-8
// byte order mark is tolerated.
func decodeSummaryCSV(ctx context.Context, r io.Reader, columns model.ColumnMap) ([]model.RegionSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: empty file")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	idx, err := indexHeader(header, columns)
	if err != nil {
		return nil, err
	}

	var (
		rows    []model.RegionSummary
		skipped int
	)
	for line := 2; ; line++ {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "csv: read line %d", line)
		}
		row, ok, err := idx.parseRow(record, line, columns)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		zap.L().Debug("dataset: skipped summary rows without region", zap.Int("skipped", skipped))
	}
	return rows, nil
}

// readSummaryXLSX parses the first sheet of a workbook; the first row is the
// header.
func readSummaryXLSX(path string, columns model.ColumnMap) ([]model.RegionSummary, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.New("xlsx: empty sheet")
	}

	idx, err := indexHeader(rowStrings(sheet.Rows[0]), columns)
	if err != nil {
		return nil, err
	}

	var rows []model.RegionSummary
	for i, r := range sheet.Rows[1:] {
		row, ok, err := idx.parseRow(rowStrings(r), i+2, columns)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func rowStrings(row *xlsx.Row) []string {
	if row == nil {
		return nil
	}
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		cells[i] = c.String()
	}
	return cells
}
