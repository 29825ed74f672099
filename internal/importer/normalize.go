package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/model"
)

// Row is one decoded worksheet row: header -> cell. Cells are string,
// float64 (or another numeric type), time.Time or absent.
type Row map[string]any

// Columns names the worksheet headers the normalizer reads.
type Columns struct {
	Date       string
	Narration  string
	Withdrawal string
	Deposit    string
}

// DefaultColumns matches the headers of a typical bank statement export.
func DefaultColumns() Columns {
	return Columns{
		Date:       "Date",
		Narration:  "Narration",
		Withdrawal: "Withdrawal Amt.",
		Deposit:    "Deposit Amt.",
	}
}

const (
	// serialEpochOffset is the spreadsheet serial of 1970-01-01.
	serialEpochOffset = 25569
	// maxSerial is 9999-12-31; larger serials are not dates.
	maxSerial = 2958465
)

// dateLayouts are tried in order for string date cells. Numeric
// day/month forms are day-first, as bank statements write them.
var dateLayouts = []string{
	model.DateFormat,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/1/2",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2-1-06",
	"2-Jan-2006",
	"2-Jan-06",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, 02 Jan 2006",
}

// Report counts what happened during one import.
type Report struct {
	Rows            int
	DateFallbacks   int
	AmountFallbacks int
}

// Normalizer turns worksheet rows into transaction drafts. A bad cell never
// fails the row: dates fall back to today and amounts to zero.
type Normalizer struct {
	cols   Columns
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithColumns overrides the header names.
func WithColumns(c Columns) Option {
	return func(n *Normalizer) { n.cols = c }
}

// WithClock sets the source of "today" for date fallbacks.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithLogger sets the logger used to record fallbacks.
func WithLogger(l zerolog.Logger) Option {
	return func(n *Normalizer) { n.logger = l }
}

// NewNormalizer creates a Normalizer with default columns and the wall clock.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		cols:   DefaultColumns(),
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NormalizeAll converts every row, in order. The result always has one
// draft per row.
func (n *Normalizer) NormalizeAll(rows []Row) ([]model.Draft, Report) {
	today := n.today()
	drafts := make([]model.Draft, 0, len(rows))
	var rep Report
	for i, row := range rows {
		d, fb := n.normalize(row, today)
		if fb.date {
			rep.DateFallbacks++
		}
		if fb.amount {
			rep.AmountFallbacks++
		}
		if fb.date || fb.amount {
			n.logger.Debug().
				Int("row", i+1).
				Bool("date_fallback", fb.date).
				Bool("amount_fallback", fb.amount).
				Msg("recovered malformed cell")
		}
		drafts = append(drafts, d)
	}
	rep.Rows = len(rows)
	return drafts, rep
}

// Normalize converts a single row.
func (n *Normalizer) Normalize(row Row) model.Draft {
	d, _ := n.normalize(row, n.today())
	return d
}

type fallbacks struct {
	date   bool
	amount bool
}

func (n *Normalizer) normalize(row Row, today time.Time) (model.Draft, fallbacks) {
	var fb fallbacks

	withdrawal, bad1 := cellDecimal(row[n.cols.Withdrawal])
	deposit, bad2 := cellDecimal(row[n.cols.Deposit])
	fb.amount = bad1 || bad2

	typ := model.TypeIncome
	amount := deposit
	if withdrawal.IsPositive() {
		typ = model.TypeExpense
		amount = withdrawal
	}
	if amount.IsNegative() {
		amount = decimal.Zero
		fb.amount = true
	}

	date, ok := cellDate(row[n.cols.Date])
	if !ok {
		date = today
		fb.date = true
	}

	return model.Draft{
		Date:        date,
		Description: cellString(row[n.cols.Narration]),
		Type:        typ,
		Amount:      amount,
		Tags:        "",
	}, fb
}

func (n *Normalizer) today() time.Time {
	return model.CalendarDate(n.now().UTC())
}

// cellDecimal reads an amount cell. Missing and blank cells are zero; the
// second result reports a cell that was present but not a number.
func cellDecimal(v any) (decimal.Decimal, bool) {
	switch c := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return c, false
	case float64:
		return floatDecimal(c)
	case float32:
		return floatDecimal(float64(c))
	case int:
		return decimal.NewFromInt(int64(c)), false
	case int64:
		return decimal.NewFromInt(c), false
	case int32:
		return decimal.NewFromInt32(c), false
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(c), ",", "")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, true
		}
		return d, false
	default:
		return decimal.Zero, true
	}
}

func floatDecimal(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, true
	}
	return decimal.NewFromFloat(f), false
}

// cellDate reads a date cell. The bool is false when the cell is missing
// or cannot be read as a real calendar date.
func cellDate(v any) (time.Time, bool) {
	switch c := v.(type) {
	case time.Time:
		if c.IsZero() {
			return time.Time{}, false
		}
		return model.CalendarDate(c), true
	case float64:
		return serialDate(c)
	case float32:
		return serialDate(float64(c))
	case int:
		return serialDate(float64(c))
	case int64:
		return serialDate(float64(c))
	case decimal.Decimal:
		return serialDate(c.InexactFloat64())
	case string:
		return parseDateString(c)
	default:
		return time.Time{}, false
	}
}

// serialDate converts a spreadsheet day count to a date. Fractions are a
// time of day and do not move the date.
func serialDate(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial < 1 || serial > maxSerial {
		return time.Time{}, false
	}
	days := int64(math.Floor(serial)) - serialEpochOffset
	secs := days * 86400
	return model.CalendarDate(time.Unix(secs, 0).UTC()), true
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(f)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.CalendarDate(t), true
		}
	}
	return time.Time{}, false
}

func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}
