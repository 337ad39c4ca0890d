package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/sniffer"
)

// ErrNoStatementSheet means the workbook has no sheet with a recognizable
// transaction table.
var ErrNoStatementSheet = errors.New("no statement sheet found")

// Sheet names tried before falling back to the first sheet with rows.
var preferredSheets = []string{
	"transactions", "statement", "account statement", "passbook", "sheet1",
}

// headerSearchDepth bounds how many leading rows are scanned for the header;
// bank exports put logos and metadata blocks above the table.
const headerSearchDepth = 20

// ParseXLSX extracts transaction rows from an Excel workbook. The statement
// sheet and its header row are located automatically; column rules and
// warning behavior match ParseCSV.
func ParseXLSX(data []byte) (*TableResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet, rows := findStatementSheet(f)
	if sheet == "" {
		return nil, ErrNoStatementSheet
	}

	headerIdx, cols := findHeaderCells(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("%w: sheet %q", ErrNoUsableColumns, sheet)
	}

	res := &TableResult{}
	for i := headerIdx + 1; i < len(rows); i++ {
		appendRow(res, rows[i], cols, i+1)
	}
	return res, nil
}

// findStatementSheet picks the sheet holding the transaction table:
// preferred names first, then the first sheet that has any rows.
func findStatementSheet(f *excelize.File) (string, [][]string) {
	sheets := f.GetSheetList()

	for _, preferred := range preferredSheets {
		for _, sheet := range sheets {
			if !strings.EqualFold(sheet, preferred) {
				continue
			}
			if rows, err := f.GetRows(sheet); err == nil && len(rows) > 0 {
				return sheet, rows
			}
		}
	}
	for _, sheet := range sheets {
		if rows, err := f.GetRows(sheet); err == nil && len(rows) > 0 {
			return sheet, rows
		}
	}
	return "", nil
}

// findHeaderCells returns the index of the first leading row whose cells
// resolve to a usable column map.
func findHeaderCells(rows [][]string) (int, sniffer.ColumnMap) {
	for i, row := range rows {
		if i >= headerSearchDepth {
			break
		}
		if cols := sniffer.MapColumns(row); cols.Usable() {
			return i, cols
		}
	}
	return -1, sniffer.ColumnMap{}
}
