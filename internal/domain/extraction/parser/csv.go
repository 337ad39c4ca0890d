package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/sniffer"
)

// ErrNoUsableColumns means headers were found but no date plus amount
// columns could be resolved, so no transaction can be extracted.
var ErrNoUsableColumns = errors.New("no usable date/amount columns")

// exportRow is the canonical export layout (the app's own CSV exports and
// most UPI app downloads). gocsv matches these tags against the lowercased
// header row.
type exportRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
}

// ParseCSV extracts transaction rows from CSV/TSV bytes. Layout detection is
// automatic: delimiter, metadata preamble, and column roles all come from
// the sniffer. The returned error is file-level only; bad rows surface as
// warnings in the result.
func ParseCSV(data []byte) (*TableResult, error) {
	cfg, err := sniffer.DetectConfig(data)
	if err != nil {
		return nil, err
	}

	cols := sniffer.MapColumns(cfg.Headers)
	if !cols.Usable() {
		return nil, fmt.Errorf("%w (headers: %s)", ErrNoUsableColumns, strings.Join(cfg.Headers, ", "))
	}

	if res, ok := parseTagged(data, cfg, cols); ok {
		return res, nil
	}
	return parseByIndex(data, cfg, cols)
}

// parseTagged handles the canonical comma-separated export through gocsv
// struct tags. Anything with a preamble, a non-comma delimiter, or dual
// credit/debit columns falls through to index-based parsing.
func parseTagged(data []byte, cfg *sniffer.FileConfig, cols sniffer.ColumnMap) (*TableResult, bool) {
	if cfg.SkipLines != 0 || cfg.Delimiter != ',' || cols.DualColumn() {
		return nil, false
	}
	for _, h := range cfg.Headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date", "description", "amount", "category":
		default:
			return nil, false
		}
	}

	// gocsv matches tags case-sensitively, so lowercase the header line.
	lines := strings.SplitN(string(data), "\n", 2)
	normalized := strings.ToLower(lines[0])
	if len(lines) == 2 {
		normalized += "\n" + lines[1]
	}

	var rows []exportRow
	if err := gocsv.UnmarshalString(normalized, &rows); err != nil {
		return nil, false
	}

	res := &TableResult{}
	for i, row := range rows {
		record := []string{row.Date, row.Description, row.Amount, row.Category}
		appendRow(res, record, sniffer.ColumnMap{
			Date: 0, Description: 1, Amount: 2, Credit: -1, Debit: -1, Category: 3,
		}, i+2)
	}
	return res, true
}

// parseByIndex walks records with encoding/csv and the resolved column map.
// The metadata preamble and header line are cut away first so the reader
// only ever sees data rows.
func parseByIndex(data []byte, cfg *sniffer.FileConfig, cols sniffer.ColumnMap) (*TableResult, error) {
	lines := strings.Split(string(data), "\n")
	body := strings.Join(lines[cfg.SkipLines+1:], "\n")

	reader := csv.NewReader(strings.NewReader(body))
	reader.Comma = cfg.Delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	res := &TableResult{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := cfg.SkipLines + 1
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line += pe.Line
			}
			res.warnf(line, "row %d: %s", line, err)
			continue
		}
		// FieldPos counts physical input lines, so blank lines the reader
		// skips and quoted multi-line fields do not shift row references.
		bodyLine, _ := reader.FieldPos(0)
		appendRow(res, record, cols, cfg.SkipLines+1+bodyLine)
	}
	return res, nil
}
