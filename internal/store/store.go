package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/datecodec"
	"github.com/cleared-dev/fintrack/internal/id"
	"github.com/cleared-dev/fintrack/internal/model"
)

// ErrNotFound is returned when no transaction has the requested ID.
var ErrNotFound = errors.New("transaction not found")

// Store is the in-memory, ordered set of transactions for one session.
// It is not safe for concurrent use; a session owns exactly one Store.
type Store struct {
	order []int64
	byID  map[int64]model.Transaction
	ids   *id.Generator
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		byID: make(map[int64]model.Transaction),
		ids:  id.NewGenerator(),
	}
}

// Add validates a manually entered draft, assigns it an ID and appends it.
func (s *Store) Add(d model.Draft) (model.Transaction, error) {
	if verrs := ValidateManual(d); len(verrs) > 0 {
		return model.Transaction{}, verrs[0]
	}
	return s.append(d), nil
}

// AddMany appends an imported batch in order. Zero amounts are allowed here;
// if any draft is invalid nothing is appended.
func (s *Store) AddMany(drafts []model.Draft) ([]model.Transaction, error) {
	for i, d := range drafts {
		if verrs := ValidateImported(d); len(verrs) > 0 {
			return nil, fmt.Errorf("row %d: %w", i+1, verrs[0])
		}
	}

	added := make([]model.Transaction, 0, len(drafts))
	for _, d := range drafts {
		added = append(added, s.append(d))
	}
	return added, nil
}

func (s *Store) append(d model.Draft) model.Transaction {
	txn := d.WithID(s.ids.Next())
	s.byID[txn.ID] = txn
	s.order = append(s.order, txn.ID)
	return txn
}

// Update parses value for field and replaces that one field on the
// transaction with the given ID. The record is untouched on error.
func (s *Store) Update(txnID int64, field model.Field, value string) (model.Transaction, error) {
	txn, ok := s.byID[txnID]
	if !ok {
		return model.Transaction{}, fmt.Errorf("updating %d: %w", txnID, ErrNotFound)
	}

	switch field {
	case model.FieldDate:
		d, err := datecodec.Parse(value)
		if err != nil {
			return model.Transaction{}, ValidationError{ID: txnID, Field: field, Reason: err.Error()}
		}
		txn.Date = d
	case model.FieldDescription:
		txn.Description = value
	case model.FieldTags:
		txn.Tags = value
	case model.FieldType:
		t, err := model.ParseType(value)
		if err != nil {
			return model.Transaction{}, ValidationError{ID: txnID, Field: field, Reason: err.Error()}
		}
		txn.Type = t
	case model.FieldAmount:
		amt, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return model.Transaction{}, ValidationError{ID: txnID, Field: field, Reason: fmt.Sprintf("%q is not a number", value)}
		}
		if amt.IsNegative() {
			return model.Transaction{}, ValidationError{ID: txnID, Field: field, Reason: "must not be negative"}
		}
		txn.Amount = amt
	default:
		return model.Transaction{}, ValidationError{ID: txnID, Field: field, Reason: "field is not editable"}
	}

	s.byID[txnID] = txn
	return txn, nil
}

// Remove deletes the transaction with the given ID. Removing an unknown ID
// is a no-op; the return value reports whether anything was deleted.
func (s *Store) Remove(txnID int64) bool {
	if _, ok := s.byID[txnID]; !ok {
		return false
	}
	delete(s.byID, txnID)
	for i, v := range s.order {
		if v == txnID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a copy of the transaction with the given ID.
func (s *Store) Get(txnID int64) (model.Transaction, bool) {
	txn, ok := s.byID[txnID]
	return txn, ok
}

// All returns a copy of every transaction in insertion order.
func (s *Store) All() []model.Transaction {
	all := make([]model.Transaction, 0, len(s.order))
	for _, v := range s.order {
		all = append(all, s.byID[v])
	}
	return all
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	return len(s.order)
}

// Total sums income minus expenses. It is recomputed on every call.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.order {
		total = total.Add(s.byID[v].Signed())
	}
	return total
}

// Balances returns the running balance after each transaction, in store order.
func (s *Store) Balances() []decimal.Decimal {
	balances := make([]decimal.Decimal, 0, len(s.order))
	running := decimal.Zero
	for _, v := range s.order {
		running = running.Add(s.byID[v].Signed())
		balances = append(balances, running)
	}
	return balances
}
