// Package session ties the transaction store to importing, exporting and
// history for one interactive run. Nothing outlives the Session.
package session

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/activity"
	"github.com/cleared-dev/fintrack/internal/config"
	"github.com/cleared-dev/fintrack/internal/export"
	"github.com/cleared-dev/fintrack/internal/id"
	"github.com/cleared-dev/fintrack/internal/importer"
	"github.com/cleared-dev/fintrack/internal/model"
	"github.com/cleared-dev/fintrack/internal/render"
	"github.com/cleared-dev/fintrack/internal/store"
)

// Session owns the transactions of one run.
type Session struct {
	cfg      *config.Config
	store    *store.Store
	norm     *importer.Normalizer
	decoders *importer.Registry
	history  *activity.Log
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source for import fallbacks, default add dates
// and history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRegistry replaces the worksheet decoders.
func WithRegistry(r *importer.Registry) Option {
	return func(s *Session) { s.decoders = r }
}

// New creates an empty Session.
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg,
		store:    store.New(),
		decoders: importer.DefaultRegistry(),
		history:  activity.NewLog(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history.SetClock(s.now)
	s.norm = importer.NewNormalizer(
		importer.WithColumns(cfg.Columns()),
		importer.WithClock(s.now),
		importer.WithLogger(logger),
	)
	return s
}

// Today is the default date for a manually added transaction.
func (s *Session) Today() time.Time {
	return model.CalendarDate(s.now().UTC())
}

// Add stores a manually entered transaction.
func (s *Session) Add(d model.Draft) (model.Transaction, error) {
	txn, err := s.store.Add(d)
	if err != nil {
		return model.Transaction{}, err
	}
	s.history.Record(activity.ActionAdd, describe(txn), txn.ID, "")
	s.logger.Debug().Int64("id", txn.ID).Str("amount", txn.Amount.String()).Msg("transaction added")
	return txn, nil
}

// ImportResult summarises one import batch.
type ImportResult struct {
	BatchID string
	Added   []model.Transaction
	Report  importer.Report
}

// Import decodes a worksheet named name from r and appends every row as one
// batch. A decode failure leaves the store untouched.
func (s *Session) Import(name string, r io.Reader) (ImportResult, error) {
	dec, err := s.decoders.ForFile(name)
	if err != nil {
		return ImportResult{}, err
	}
	rows, err := dec.Decode(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("decoding %s: %w", filepath.Base(name), err)
	}
	return s.importRows(filepath.Base(name), rows)
}

// ImportFile imports the worksheet at path.
func (s *Session) ImportFile(path string) (ImportResult, error) {
	rows, err := importer.ReadFile(s.decoders, path)
	if err != nil {
		return ImportResult{}, err
	}
	return s.importRows(filepath.Base(path), rows)
}

func (s *Session) importRows(source string, rows []importer.Row) (ImportResult, error) {
	drafts, rep := s.norm.NormalizeAll(rows)
	added, err := s.store.AddMany(drafts)
	if err != nil {
		return ImportResult{}, fmt.Errorf("importing %s: %w", source, err)
	}

	batchID := uuid.NewString()
	s.history.Record(activity.ActionImport, fmt.Sprintf("%d rows from %s", len(added), source), 0, batchID)
	s.logger.Info().
		Str("file", source).
		Str("batch", batchID).
		Int("rows", rep.Rows).
		Int("date_fallbacks", rep.DateFallbacks).
		Int("amount_fallbacks", rep.AmountFallbacks).
		Msg("import complete")

	return ImportResult{BatchID: batchID, Added: added, Report: rep}, nil
}

// Update edits one field of a transaction.
func (s *Session) Update(txnID int64, field model.Field, value string) (model.Transaction, error) {
	txn, err := s.store.Update(txnID, field, value)
	if err != nil {
		return model.Transaction{}, err
	}
	s.history.Record(activity.ActionUpdate, fmt.Sprintf("%s=%s", field, value), txnID, "")
	return txn, nil
}

// Remove deletes a transaction; unknown IDs are ignored.
func (s *Session) Remove(txnID int64) bool {
	removed := s.store.Remove(txnID)
	if removed {
		s.history.Record(activity.ActionRemove, "", txnID, "")
	}
	return removed
}

// Transactions returns every transaction in store order.
func (s *Session) Transactions() []model.Transaction {
	return s.store.All()
}

// Total is income minus expenses.
func (s *Session) Total() decimal.Decimal {
	return s.store.Total()
}

// FormatAmount renders d with the configured currency symbol.
func (s *Session) FormatAmount(d decimal.Decimal) string {
	return render.Amount(s.cfg.Display.CurrencySymbol, d)
}

// Render draws the transaction table.
func (s *Session) Render(w io.Writer, edit bool) error {
	return render.Table(w, s.store.All(), s.store.Balances(), s.store.Total(), render.Options{
		Symbol: s.cfg.Display.CurrencySymbol,
		Edit:   edit,
	})
}

// ExportCSV renders the CSV document.
func (s *Session) ExportCSV() (string, error) {
	return export.CSV(s.store.All())
}

// ExportJSON renders the JSON document.
func (s *Session) ExportJSON() (string, error) {
	return export.JSON(s.store.All())
}

// SaveCSV writes the CSV export into dir under the configured name.
func (s *Session) SaveCSV(dir string) (string, error) {
	body, err := s.ExportCSV()
	if err != nil {
		return "", err
	}
	return export.Save(dir, s.cfg.Export.CSVFile, body)
}

// SaveJSON writes the JSON export into dir under the configured name.
func (s *Session) SaveJSON(dir string) (string, error) {
	body, err := s.ExportJSON()
	if err != nil {
		return "", err
	}
	return export.Save(dir, s.cfg.Export.JSONFile, body)
}

// WriteHistory writes the session history as CSV.
func (s *Session) WriteHistory(w io.Writer) error {
	return s.history.WriteCSV(w)
}

// History returns the recorded entries, oldest first.
func (s *Session) History() []activity.Entry {
	return s.history.Entries()
}

func describe(txn model.Transaction) string {
	parts := []string{"#" + id.Format(txn.ID), string(txn.Type), txn.Amount.StringFixed(2)}
	if txn.Description != "" {
		parts = append(parts, txn.Description)
	}
	return strings.Join(parts, " ")
}
