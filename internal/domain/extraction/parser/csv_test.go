package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/sniffer"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCSV_CleanExport(t *testing.T) {
	data := "Date,Description,Amount,Category\n" +
		"09/08/2025,Swiggy Order,-250.00,Food\n" +
		"10/08/2025,Salary,50000,\n"

	res, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, date(2025, 8, 9), res.Rows[0].Date)
	assert.True(t, res.Rows[0].Amount.Equal(decimal.RequireFromString("-250.00")))
	assert.Equal(t, "Swiggy Order", res.Rows[0].Description)
	assert.Equal(t, "Food", res.Rows[0].RawCategory)

	assert.Equal(t, date(2025, 8, 10), res.Rows[1].Date)
	assert.True(t, res.Rows[1].Amount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "", res.Rows[1].RawCategory)
}

func TestParseCSV_BankExportWithPreamble(t *testing.T) {
	data := "HDFC Bank Statement\n" +
		"Account No: 1234\n" +
		"\n" +
		"Txn Date,Narration,Debit,Credit\n" +
		"01/02/2025,UPI/443312/SWIGGY/swiggy@ybl,250.00,\n" +
		"02/02/2025,SALARY CREDIT,,50000.00\n" +
		"not a date,foo,,10.00\n" +
		"03/02/2025,ZERO ROW,,\n"

	res, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	// Dual columns: amount is credit minus debit.
	assert.True(t, res.Rows[0].Amount.Equal(decimal.NewFromInt(-250)))
	assert.Equal(t, date(2025, 2, 1), res.Rows[0].Date)
	assert.True(t, res.Rows[1].Amount.Equal(decimal.NewFromInt(50000)))

	// Source order is preserved.
	assert.Less(t, res.Rows[0].Line, res.Rows[1].Line)

	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0].Message, "unparseable date")
	assert.Equal(t, 7, res.Warnings[0].Ref)
	assert.Contains(t, res.Warnings[1].Message, "missing amount")
	assert.Equal(t, 8, res.Warnings[1].Ref)
}

func TestParseCSV_TwoColumnExport(t *testing.T) {
	data := "Date,Amount\n15/02/2025,500\n"

	res, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, date(2025, 2, 15), res.Rows[0].Date)
	assert.True(t, res.Rows[0].Amount.Equal(decimal.NewFromInt(500)))
}

func TestParseCSV_PhysicalLineRefs(t *testing.T) {
	// Blank lines and quoted multi-line fields consume input lines the csv
	// reader hides; row references must still point at the real file line.
	data := "Date;Description;Amount\n" +
		"13/02/2025;Swiggy;-250.00\n" +
		"\n" +
		"14/02/2025;\"Zomato\nDinner\";-120.00\n" +
		"15/02/2025;Uber;-95.00\n"

	res, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	assert.Equal(t, 2, res.Rows[0].Line)
	assert.Equal(t, 4, res.Rows[1].Line)
	assert.Equal(t, 6, res.Rows[2].Line)
}

func TestParseCSV_SemicolonDelimiter(t *testing.T) {
	data := "Date;Description;Amount\n15/02/25;IRCTC;-890.00\n"

	res, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, date(2025, 2, 15), res.Rows[0].Date)
	assert.True(t, res.Rows[0].Amount.Equal(decimal.RequireFromString("-890")))
}

func TestParseCSV_AmountWithCurrencyAndMarker(t *testing.T) {
	data := "Date,Description,Amount\n" +
		"01/03/2025,Grocery,\"Rs. 1,234.50 Dr\"\n"

	res, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.True(t, res.Rows[0].Amount.Equal(decimal.RequireFromString("-1234.50")))
}

func TestParseCSV_FileLevelErrors(t *testing.T) {
	_, err := ParseCSV(nil)
	assert.ErrorIs(t, err, sniffer.ErrEmptyFile)

	_, err = ParseCSV([]byte("foo,bar,baz\n1,2,3\n"))
	assert.ErrorIs(t, err, ErrNoUsableColumns)
}

func TestParseCSV_ZeroAmountRejected(t *testing.T) {
	data := "Date,Description,Amount\n01/02/2025,Refund,0.00\n"

	res, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "unparseable amount")
}
