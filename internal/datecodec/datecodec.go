// Package datecodec converts canonical ISO dates to and from the DD/MM/YY
// form used when a transaction is edited inline.
package datecodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/fintrack/internal/model"
)

const (
	editableSep  = "/"
	canonicalSep = "-"
	century      = 2000
)

// ToEditable renders "2025-03-07" as "07/03/25". Years outside the 2000s keep
// all four digits so the century survives the round trip. Anything that is
// not a valid three-field canonical date yields "".
func ToEditable(canonical string) string {
	parts := strings.Split(strings.TrimSpace(canonical), canonicalSep)
	if len(parts) != 3 {
		return ""
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	d, ok := calendar(year, month, day)
	if !ok {
		return ""
	}
	return FormatEditable(d)
}

// FromEditable parses "07/03/25" or "07/03/2025" back to "2025-03-07".
func FromEditable(editable string) (string, error) {
	d, err := ParseEditable(editable)
	if err != nil {
		return "", err
	}
	return d.Format(model.DateFormat), nil
}

// FormatEditable renders a stored date in editable form.
func FormatEditable(d time.Time) string {
	year := d.Year()
	if year >= century && year < century+100 {
		return fmt.Sprintf("%02d/%02d/%02d", d.Day(), int(d.Month()), year-century)
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day(), int(d.Month()), year)
}

// ParseEditable reads DD/MM/YY or DD/MM/YYYY. Two-digit years are 20YY.
func ParseEditable(editable string) (time.Time, error) {
	s := strings.TrimSpace(editable)
	parts := strings.Split(s, editableSep)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("parsing editable date %q: expected DD/MM/YY", editable)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day in %q: %w", editable, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing month in %q: %w", editable, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing year in %q: %w", editable, err)
	}

	switch len(parts[2]) {
	case 2:
		year += century
	case 4:
	default:
		return time.Time{}, fmt.Errorf("parsing year in %q: expected 2 or 4 digits", editable)
	}

	d, ok := calendar(year, month, day)
	if !ok {
		return time.Time{}, fmt.Errorf("parsing editable date %q: no such calendar date", editable)
	}
	return d, nil
}

// Parse accepts either the canonical or the editable form.
func Parse(s string) (time.Time, error) {
	if strings.Contains(s, editableSep) {
		return ParseEditable(s)
	}
	return model.ParseDate(s)
}

// calendar builds the date and rejects values time.Date would normalize
// (Feb 30, month 13).
func calendar(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := model.NewDate(year, time.Month(month), day)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
