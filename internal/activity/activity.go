package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Action names what happened to the transaction list.
type Action string

const (
	ActionAdd    Action = "add"
	ActionImport Action = "import"
	ActionUpdate Action = "update"
	ActionRemove Action = "remove"
)

// Entry is one row in the session history.
type Entry struct {
	Timestamp     time.Time
	Action        Action
	Details       string
	TransactionID int64  // 0 when the action is not about one transaction
	BatchID       string // set for every entry written by one import
}

// Header is the CSV header of an exported history.
const Header = "timestamp,action,details,transaction_id,batch_id"

const (
	numFields    = 5
	colTimestamp = 0
	colAction    = 1
	colDetails   = 2
	colTxnID     = 3
	colBatchID   = 4
)

// Log collects entries for the lifetime of a session. It is never persisted.
type Log struct {
	entries []Entry
	now     func() time.Time
}

// NewLog creates an empty Log stamped by the wall clock.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// SetClock replaces the timestamp source.
func (l *Log) SetClock(now func() time.Time) {
	l.now = now
}

// Record appends an entry stamped with the current time.
func (l *Log) Record(action Action, details string, txnID int64, batchID string) Entry {
	e := Entry{
		Timestamp:     l.now().UTC(),
		Action:        action,
		Details:       details,
		TransactionID: txnID,
		BatchID:       batchID,
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a copy of all entries, oldest first.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = string(e.Action)
	row[colDetails] = e.Details
	if e.TransactionID != 0 {
		row[colTxnID] = strconv.FormatInt(e.TransactionID, 10)
	}
	row[colBatchID] = e.BatchID
	return row
}

// WriteCSV writes the header and every entry.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range l.entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
