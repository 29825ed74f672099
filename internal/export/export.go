// Package export renders the transaction list as downloadable documents.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/fintrack/internal/model"
)

// ErrEmpty is returned by CSV when there is nothing to export.
var ErrEmpty = errors.New("no transactions to export")

// Header is the first line of a CSV export.
const Header = "Date,Description,Type,Amount,Tags"

const (
	// DefaultCSVName is the file name a CSV export is saved under.
	DefaultCSVName = "transactions.csv"
	// DefaultJSONName is the file name a JSON export is saved under.
	DefaultJSONName = "transactions.json"
)

// CSV renders transactions one per line in store order. Fields are joined
// with commas and are not quoted, so a comma inside a description or tags
// shifts the columns of that line.
func CSV(txns []model.Transaction) (string, error) {
	if len(txns) == 0 {
		return "", ErrEmpty
	}
	lines := make([]string, 0, len(txns)+1)
	lines = append(lines, Header)
	for _, txn := range txns {
		lines = append(lines, strings.Join(MarshalRow(txn), ","))
	}
	return strings.Join(lines, "\n"), nil
}

// MarshalRow converts a transaction to its CSV fields.
func MarshalRow(txn model.Transaction) []string {
	return []string{
		txn.DateString(),
		txn.Description,
		string(txn.Type),
		txn.Amount.String(),
		txn.Tags,
	}
}

// Record is the JSON shape of one exported transaction.
type Record struct {
	ID          int64       `json:"id"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Tags        string      `json:"tags"`
}

// NewRecord converts a transaction to its JSON record.
func NewRecord(txn model.Transaction) Record {
	return Record{
		ID:          txn.ID,
		Date:        txn.DateString(),
		Description: txn.Description,
		Type:        string(txn.Type),
		Amount:      json.Number(txn.Amount.String()),
		Tags:        txn.Tags,
	}
}

// JSON renders transactions as a pretty-printed array. An empty list is "[]".
func JSON(txns []model.Transaction) (string, error) {
	records := make([]Record, 0, len(txns))
	for _, txn := range txns {
		records = append(records, NewRecord(txn))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling transactions: %w", err)
	}
	return string(data), nil
}

// Save writes an exported document to dir/name and returns the full path.
func Save(dir, name, body string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
