// Package parser extracts transaction rows from tabular statement files
// (CSV/TSV and Excel workbooks). It resolves columns through the sniffer,
// applies the signed-amount rules, and reports bad rows as warnings instead
// of failing the file.
package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/normalizer"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/sniffer"
)

// Row is one extracted statement line. Amount is signed: negative = outflow.
// Category resolution and merchant derivation happen downstream.
type Row struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	RawCategory string
	// Line is the 1-indexed source line (CSV) or sheet row (Excel).
	Line int
}

// TableResult holds the rows extracted from one tabular file. Rows keep
// their source order. Warnings reference rejected or degraded rows.
type TableResult struct {
	Rows     []Row
	Warnings []extraction.Diagnostic
	Total    int
	Parsed   int
	Skipped  int
}

func (r *TableResult) warnf(line int, format string, args ...any) {
	r.Warnings = append(r.Warnings, extraction.Diagnostic{
		Severity: extraction.SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Ref:      line,
	})
}

// appendRow parses one data record into a Row. Rejected rows become warnings
// carrying the line number and the offending raw value; fully blank records
// are skipped silently.
func appendRow(res *TableResult, record []string, cols sniffer.ColumnMap, line int) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	if blankRecord(record) {
		res.Skipped++
		return
	}
	res.Total++

	dateStr := get(cols.Date)
	if dateStr == "" {
		res.Skipped++
		res.warnf(line, "row %d: missing date", line)
		return
	}
	date, ok := normalizer.ParseDate(dateStr)
	if !ok {
		res.Skipped++
		res.warnf(line, "row %d: unparseable date %q", line, dateStr)
		return
	}

	amount, ok := rowAmount(res, cols, get, line)
	if !ok {
		res.Skipped++
		return
	}

	res.Rows = append(res.Rows, Row{
		Date:        date,
		Amount:      amount,
		Description: normalizer.CleanText(get(cols.Description)),
		RawCategory: get(cols.Category),
		Line:        line,
	})
	res.Parsed++
}

// rowAmount applies the signed-amount rules: a single amount column keeps
// its sign as written; dual credit/debit columns produce credit minus debit,
// reading both columns as magnitudes. A zero result is rejected.
func rowAmount(res *TableResult, cols sniffer.ColumnMap, get func(int) string, line int) (decimal.Decimal, bool) {
	if cols.DualColumn() {
		creditStr, debitStr := get(cols.Credit), get(cols.Debit)
		if creditStr == "" && debitStr == "" {
			res.warnf(line, "row %d: missing amount", line)
			return decimal.Zero, false
		}
		credit, creditOK := normalizer.ParseAmount(creditStr)
		debit, debitOK := normalizer.ParseAmount(debitStr)
		if !creditOK && !debitOK {
			res.warnf(line, "row %d: unparseable amount %q", line, creditStr+debitStr)
			return decimal.Zero, false
		}
		amount := credit.Abs().Sub(debit.Abs())
		if amount.IsZero() {
			res.warnf(line, "row %d: credit and debit cancel out", line)
			return decimal.Zero, false
		}
		return amount, true
	}

	amountStr := get(cols.Amount)
	if amountStr == "" {
		res.warnf(line, "row %d: missing amount", line)
		return decimal.Zero, false
	}
	amount, ok := normalizer.ParseAmount(amountStr)
	if !ok {
		res.warnf(line, "row %d: unparseable amount %q", line, amountStr)
		return decimal.Zero, false
	}
	return amount, true
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
