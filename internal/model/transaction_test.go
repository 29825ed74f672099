package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"income", TypeIncome, false},
		{"Expense", TypeExpense, false},
		{"  INCOME ", TypeIncome, false},
		{"transfer", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseField(t *testing.T) {
	for _, name := range []string{"date", "description", "type", "amount", "tags", "Amount"} {
		_, err := ParseField(name)
		assert.NoError(t, err, "field %q", name)
	}
	_, err := ParseField("id")
	assert.Error(t, err, "id must not be editable")
}

func TestSigned(t *testing.T) {
	in := Transaction{Type: TypeIncome, Amount: decimal.NewFromInt(100)}
	out := Transaction{Type: TypeExpense, Amount: decimal.NewFromInt(40)}
	assert.Equal(t, "100", in.Signed().String())
	assert.Equal(t, "-40", out.Signed().String())
}

func TestDraftWithID(t *testing.T) {
	d := Draft{
		Date:        NewDate(2023, time.May, 1),
		Description: "Rent",
		Type:        TypeExpense,
		Amount:      decimal.NewFromInt(500),
		Tags:        "home",
	}
	txn := d.WithID(7)
	assert.Equal(t, int64(7), txn.ID)
	assert.Equal(t, "2023-05-01", txn.DateString())
	assert.Equal(t, "Rent", txn.Description)
	assert.Equal(t, "home", txn.Tags)
}

func TestCalendarDate(t *testing.T) {
	zone := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2024, time.March, 1, 0, 30, 0, 0, zone)
	got := CalendarDate(local)
	assert.Equal(t, "2024-03-01", got.Format(DateFormat))
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-01-01")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2023, time.January, 1), d)

	_, err = ParseDate("01/01/23")
	assert.Error(t, err)
}
