package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVDecoder reads a comma-separated worksheet whose first line is the header.
// Every cell decodes as a string.
type CSVDecoder struct{}

// Format returns the decoder name.
func (d *CSVDecoder) Format() string { return "csv" }

// Decode reads all data rows. Blank cells are left out of the row and
// rows with no cells at all are skipped.
func (d *CSVDecoder) Decode(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	header := records[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows []Row
	for _, rec := range records[1:] {
		row := make(Row)
		for col, cell := range rec {
			if col >= len(header) || header[col] == "" || strings.TrimSpace(cell) == "" {
				continue
			}
			row[header[col]] = cell
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
