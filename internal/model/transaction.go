package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical ISO layout every stored date is rendered in.
const DateFormat = "2006-01-02"

// Type is the direction of a transaction. Exactly two values exist.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseType converts user input ("Income", " expense ") to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Field names an editable transaction attribute.
type Field string

const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldType        Field = "type"
	FieldAmount      Field = "amount"
	FieldTags        Field = "tags"
)

// ParseField converts a field name to a Field. The id is not editable.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldDate, FieldDescription, FieldType, FieldAmount, FieldTags:
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// Draft is a transaction that has not been assigned an ID yet.
type Draft struct {
	Date        time.Time
	Description string
	Type        Type
	Amount      decimal.Decimal // never negative; the sign lives in Type
	Tags        string
}

// Transaction is a stored, identified financial movement.
type Transaction struct {
	ID          int64
	Date        time.Time //nolint:revive // plain field name is clearest
	Description string
	Type        Type
	Amount      decimal.Decimal
	Tags        string
}

// WithID stamps a draft with its store-assigned ID.
func (d Draft) WithID(id int64) Transaction {
	return Transaction{
		ID:          id,
		Date:        d.Date,
		Description: d.Description,
		Type:        d.Type,
		Amount:      d.Amount,
		Tags:        d.Tags,
	}
}

// Signed returns +Amount for income and -Amount for expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// DateString renders the canonical form of the transaction date.
func (t Transaction) DateString() string {
	return t.Date.Format(DateFormat)
}

// NewDate returns the calendar date y-m-d at UTC midnight.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CalendarDate drops the clock and zone from t, keeping the date as written in t's own zone.
func CalendarDate(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a canonical "YYYY-MM-DD" string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return d, nil
}
