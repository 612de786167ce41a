package store

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/location-screen/internal/model"
)

// CSVFile reads locations from a CSV export with a header row.
type CSVFile struct {
	Path      string
	KeepOrder bool
}

// Locations parses the file. Rows are sorted by name unless KeepOrder is set.
func (s *CSVFile) Locations(ctx context.Context) ([]model.Location, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.LazyQuotes = true

	var records [][]string
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		records = append(records, record)
	}

	return buildLocations("csv", records, s.KeepOrder)
}

// Close is a no-op.
func (s *CSVFile) Close() error { return nil }

// XLSXFile reads locations from the first sheet of a workbook.
type XLSXFile struct {
	Path      string
	KeepOrder bool
}

// Locations parses the first sheet. Rows are sorted by name unless KeepOrder is set.
func (s *XLSXFile) Locations(ctx context.Context) ([]model.Location, error) {
	f, err := xlsx.OpenFile(s.Path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}

	sheet := f.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "xlsx: context cancelled")
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		records = append(records, cells)
	}

	return buildLocations("xlsx", records, s.KeepOrder)
}

// Close is a no-op.
func (s *XLSXFile) Close() error { return nil }

// columns maps header names to record indexes; -1 when absent.
type columns struct {
	id, name, description, hours, address, cityID int
}

func mapHeader(header []string) columns {
	c := columns{-1, -1, -1, -1, -1, -1}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff") // Excel writes a UTF-8 BOM
		}
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			c.id = i
		case "name":
			c.name = i
		case "description":
			c.description = i
		case "hours":
			c.hours = i
		case "address":
			c.address = i
		case "city_id", "cityid":
			c.cityID = i
		}
	}
	return c
}

func cellAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// buildLocations converts header-led records into locations. Empty
// description and hours cells become nil.
func buildLocations(kind string, records [][]string, keepOrder bool) ([]model.Location, error) {
	if len(records) == 0 {
		return nil, eris.Errorf("%s: missing header row", kind)
	}

	cols := mapHeader(records[0])
	if cols.id < 0 || cols.name < 0 {
		return nil, eris.Errorf("%s: header must include id and name columns", kind)
	}

	out := make([]model.Location, 0, len(records)-1)
	for i, record := range records[1:] {
		loc := model.Location{
			ID:          strings.TrimSpace(cellAt(record, cols.id)),
			Name:        strings.TrimSpace(cellAt(record, cols.name)),
			Description: model.StringPtr(cellAt(record, cols.description)),
			Hours:       model.StringPtr(cellAt(record, cols.hours)),
			Address:     cellAt(record, cols.address),
			CityID:      cellAt(record, cols.cityID),
		}
		if loc.Name == "" {
			zap.L().Warn(kind+": skipping row without name", zap.Int("row", i+2), zap.String("location_id", loc.ID))
			continue
		}
		out = append(out, loc)
	}

	if !keepOrder {
		slices.SortStableFunc(out, func(a, b model.Location) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return out, nil
}
