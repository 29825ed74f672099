package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/fintrack/internal/model"
)

// buildWorkbook writes cells (row-major, header first) to an in-memory xlsx.
func buildWorkbook(t *testing.T, cells [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, rec := range cells {
		for c, v := range rec {
			if v == nil {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSXDecoder_Decode(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Date", "Narration", "Withdrawal Amt.", "Deposit Amt."},
		{44927, "New year dinner", 1500.5, nil},
		{"2023-05-01", "Rent", "500", nil},
		{nil, nil, nil, nil},
		{nil, "Refund", nil, 250},
	})

	rows, err := (&XLSXDecoder{}).Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, float64(44927), rows[0]["Date"])
	assert.Equal(t, "New year dinner", rows[0]["Narration"])
	assert.Equal(t, 1500.5, rows[0]["Withdrawal Amt."])

	assert.Equal(t, "2023-05-01", rows[1]["Date"])
	assert.Equal(t, "500", rows[1]["Withdrawal Amt."])

	_, hasDate := rows[2]["Date"]
	assert.False(t, hasDate)
	assert.Equal(t, float64(250), rows[2]["Deposit Amt."])
}

func TestXLSXDecoder_FirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	first := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(first, "A1", "Date"))
	require.NoError(t, f.SetCellValue(first, "A2", "2024-01-01"))

	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Other", "A1", "Date"))
	require.NoError(t, f.SetCellValue("Other", "A2", "1999-01-01"))
	require.NoError(t, f.SetCellValue("Other", "A3", "1999-01-02"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := (&XLSXDecoder{}).Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-01", rows[0]["Date"])
}

func TestXLSXDecoder_HeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]any{{"Date", "Narration"}})
	rows, err := (&XLSXDecoder{}).Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestXLSXDecoder_Corrupt(t *testing.T) {
	_, err := (&XLSXDecoder{}).Decode(strings.NewReader("PK not really"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening workbook")
}

func TestXLSXDecoder_FeedsNormalizer(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Date", "Narration", "Withdrawal Amt.", "Deposit Amt."},
		{44927, "Dinner", 1500.5, nil},
		{"", "Mystery", nil, 20},
	})
	rows, err := (&XLSXDecoder{}).Decode(bytes.NewReader(data))
	require.NoError(t, err)

	drafts, rep := newTestNormalizer().NormalizeAll(rows)
	require.Len(t, drafts, 2)
	assert.Equal(t, "2023-01-01", drafts[0].Date.Format(model.DateFormat))
	assert.Equal(t, model.TypeExpense, drafts[0].Type)
	assert.Equal(t, "1500.5", drafts[0].Amount.String())

	assert.Equal(t, "2026-10-17", drafts[1].Date.Format(model.DateFormat))
	assert.Equal(t, model.TypeIncome, drafts[1].Type)
	assert.Equal(t, 1, rep.DateFallbacks)
}

func TestXLSXValue(t *testing.T) {
	assert.Equal(t, 12.5, xlsxValue(excelize.CellTypeUnset, "12.5"))
	assert.Equal(t, "abc", xlsxValue(excelize.CellTypeUnset, "abc"))
	assert.Equal(t, "12.5", xlsxValue(excelize.CellTypeSharedString, "12.5"))

	v := xlsxValue(excelize.CellTypeDate, "2023-05-01T00:00:00Z")
	d, ok := v.(time.Time)
	require.True(t, ok, "typed date cells decode as time.Time")
	assert.Equal(t, 2023, d.Year())
}
