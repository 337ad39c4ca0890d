package service

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

// Format is the detected statement file format.
type Format string

const (
	FormatUnknown Format = "unknown"
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatPDF     Format = "pdf"
)

// Classify routes a raw input to an extraction strategy. The file extension
// wins, then the declared media type, then content sniffing; misnamed files
// are common enough that none of the three alone is trustworthy.
func Classify(input extraction.RawInput) Format {
	switch strings.ToLower(filepath.Ext(input.Filename)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".xlsx", ".xls", ".xlsm":
		return FormatXLSX
	case ".pdf":
		return FormatPDF
	}

	switch strings.ToLower(input.MediaType) {
	case "text/csv", "text/tab-separated-values", "text/plain":
		return FormatCSV
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel":
		return FormatXLSX
	case "application/pdf":
		return FormatPDF
	}

	return sniffContent(input.Data)
}

func sniffContent(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return FormatPDF
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		// XLSX workbooks are zip containers.
		return FormatXLSX
	case looksDelimited(data):
		return FormatCSV
	}
	return FormatUnknown
}

// looksDelimited reports whether the first line reads like a delimited
// text table.
func looksDelimited(data []byte) bool {
	if len(data) == 0 || !bytes.ContainsAny(data[:min(len(data), 4096)], ",;\t|") {
		return false
	}
	for _, b := range data[:min(len(data), 512)] {
		if b == 0 {
			return false
		}
	}
	return true
}

// appHints maps filename fragments to pattern template names. "GPay" and
// "Google Pay" both show up in real download names.
var appHints = []struct {
	fragment string
	template string
}{
	{"phonepe", "phonepe"},
	{"googlepay", "gpay"},
	{"google_pay", "gpay"},
	{"google pay", "gpay"},
	{"gpay", "gpay"},
	{"paytm", "paytm"},
	{"supermoney", "supermoney"},
	{"super_money", "supermoney"},
}

// AppHint extracts a UPI app hint from the filename, or "" when the name
// says nothing.
func AppHint(filename string) string {
	lower := strings.ToLower(filename)
	for _, h := range appHints {
		if strings.Contains(lower, h.fragment) {
			return h.template
		}
	}
	return ""
}
