package datecodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fintrack/internal/model"
)

func TestToEditable(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-03-07", "07/03/25"},
		{"2000-01-01", "01/01/00"},
		{"2099-12-31", "31/12/99"},
		{"1999-12-31", "31/12/1999"},
		{"2100-01-01", "01/01/2100"},
		{"2024-2-9", "09/02/24"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToEditable(tt.input), "ToEditable(%q)", tt.input)
	}
}

func TestToEditable_Malformed(t *testing.T) {
	for _, input := range []string{"", "2025-03", "2025-03-07-01", "07/03/25", "yyyy-mm-dd", "2023-02-30", "2023-13-01"} {
		assert.Equal(t, "", ToEditable(input), "input %q", input)
	}
}

func TestFromEditable(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"07/03/25", "2025-03-07"},
		{"7/3/25", "2025-03-07"},
		{"01/01/00", "2000-01-01"},
		{"31/12/1999", "1999-12-31"},
		{"29/02/24", "2024-02-29"},
	}
	for _, tt := range tests {
		got, err := FromEditable(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestFromEditable_Errors(t *testing.T) {
	for _, input := range []string{"", "2025-03-07", "07/03", "aa/03/25", "07/bb/25", "07/03/2", "29/02/23", "32/01/25", "01/13/25"} {
		_, err := FromEditable(input)
		assert.Error(t, err, "expected error for %q", input)
	}
}

func TestRoundTrip_EveryDay(t *testing.T) {
	start := model.NewDate(1998, time.January, 1)
	end := model.NewDate(2101, time.December, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		canonical := d.Format(model.DateFormat)
		got, err := FromEditable(ToEditable(canonical))
		require.NoError(t, err, "date %s", canonical)
		require.Equal(t, canonical, got)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2023-05-01")
	require.NoError(t, err)
	assert.Equal(t, model.NewDate(2023, time.May, 1), d)

	d, err = Parse("01/05/23")
	require.NoError(t, err)
	assert.Equal(t, model.NewDate(2023, time.May, 1), d)

	_, err = Parse("May 1")
	assert.Error(t, err)
}
