package importer

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// XLSXDecoder reads the first sheet of an Office Open XML workbook.
// Numeric cells (including date serials) decode as float64, typed date
// cells as time.Time and everything else as string.
type XLSXDecoder struct{}

// Format returns the decoder name.
func (d *XLSXDecoder) Format() string { return "xlsx" }

// Decode reads all data rows below the header row.
func (d *XLSXDecoder) Decode(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	header := records[0]
	var rows []Row
	for i, rec := range records[1:] {
		row := make(Row)
		for col, raw := range rec {
			if col >= len(header) || header[col] == "" || raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell, err)
			}
			row[header[col]] = xlsxValue(typ, raw)
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var xlsxDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func xlsxValue(typ excelize.CellType, raw string) any {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeFormula:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case excelize.CellTypeDate:
		for _, layout := range xlsxDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return raw
}
