package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, cell := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", axis, cell))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Account Statement"},
		{"Txn Date", "Narration", "Debit", "Credit"},
		{"01/02/2025", "UPI/443312/SWIGGY/swiggy@ybl", "250.00", ""},
		{"02/02/2025", "SALARY CREDIT", "", "50000.00"},
		{"bad date", "foo", "10.00", ""},
	})

	res, err := ParseXLSX(data)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, date(2025, 2, 1), res.Rows[0].Date)
	assert.True(t, res.Rows[0].Amount.Equal(decimal.NewFromInt(-250)))
	assert.Equal(t, date(2025, 2, 2), res.Rows[1].Date)
	assert.True(t, res.Rows[1].Amount.Equal(decimal.NewFromInt(50000)))

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "unparseable date")
	assert.Equal(t, 5, res.Warnings[0].Ref)
}

func TestParseXLSX_SingleAmountColumn(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Date", "Description", "Amount", "Category"},
		{"09/08/2025", "Swiggy Order", "-250.00", "Food"},
	})

	res, err := ParseXLSX(data)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.True(t, res.Rows[0].Amount.Equal(decimal.RequireFromString("-250")))
	assert.Equal(t, "Food", res.Rows[0].RawCategory)
}

func TestParseXLSX_NoUsableColumns(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"foo", "bar"},
		{"1", "2"},
	})

	_, err := ParseXLSX(data)
	assert.ErrorIs(t, err, ErrNoUsableColumns)
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	_, err := ParseXLSX([]byte("plain text, not a zip"))
	assert.Error(t, err)
}
