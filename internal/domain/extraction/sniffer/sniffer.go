// Package sniffer detects the shape of tabular statement exports: the field
// delimiter, the header row (bank exports often carry metadata preambles),
// and which columns hold the date, amount and description fields.
package sniffer

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"unicode"
)

var (
	ErrEmptyFile        = errors.New("file is empty")
	ErrNoHeadersFound   = errors.New("could not find data headers")
	ErrInvalidDelimiter = errors.New("could not detect valid delimiter")
)

// Header keywords used to score candidate header rows. Statement exports from
// Indian banks and UPI apps use a fairly small vocabulary.
var headerKeywords = []string{
	"date", "txn date", "transaction date", "value date",
	"description", "narration", "details", "particulars", "remarks",
	"amount", "debit", "credit", "withdrawal", "deposit", "balance",
	"category", "tag", "merchant", "payee", "ref", "utr", "mode", "type",
}

// Column candidate lists, in priority order. The first candidate that matches
// any header wins, so "transaction date" is preferred over a bare "date" and
// "narration" over a generic "details".
var (
	dateCandidates = []string{
		"transaction date", "txn date", "value date", "posting date",
		"date", "txn dt", "dt",
	}
	amountCandidates = []string{
		"amount (inr)", "transaction amount", "txn amount", "amount",
		"value", "amt",
	}
	descCandidates = []string{
		"narration", "description", "particulars", "details", "remarks",
		"note", "merchant", "payee", "name",
	}
	creditCandidates = []string{
		"credit amount", "credit", "deposit", "cr",
	}
	debitCandidates = []string{
		"debit amount", "debit", "withdrawal", "dr",
	}
	categoryCandidates = []string{
		"category", "tag",
	}
)

// FileConfig holds the detected layout of a CSV/TSV file.
type FileConfig struct {
	Delimiter   rune       // field delimiter (',', ';', '\t', '|')
	SkipLines   int        // metadata lines before the header row
	Headers     []string   // trimmed header names
	Fingerprint string     // SHA256 of normalized headers, for layout recognition
	SampleRows  [][]string // first few data rows, for dialect probing and previews
}

// ColumnMap holds the resolved column indices for a tabular statement.
// An index of -1 means the column was not found.
type ColumnMap struct {
	Date        int
	Description int
	Amount      int // single signed-amount column; -1 when dual credit/debit
	Credit      int
	Debit       int
	Category    int
}

// DualColumn reports whether the statement carries separate credit and debit
// columns instead of a single signed amount.
func (m ColumnMap) DualColumn() bool {
	return m.Credit != -1 && m.Debit != -1
}

// Usable reports whether enough columns were found to extract transactions:
// a date plus either a single amount or a credit/debit pair.
func (m ColumnMap) Usable() bool {
	return m.Date != -1 && (m.Amount != -1 || m.DualColumn())
}

// DetectConfig analyzes raw CSV/TSV bytes and returns the detected layout.
func DetectConfig(data []byte) (*FileConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	lines := strings.Split(string(data), "\n")

	delimiter, skipLines, err := findHeaderRow(lines)
	if err != nil {
		return nil, err
	}

	headerLine := cleanLine(lines[skipLines], skipLines == 0)
	reader := csv.NewReader(strings.NewReader(headerLine))
	reader.Comma = delimiter
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	return &FileConfig{
		Delimiter:   delimiter,
		SkipLines:   skipLines,
		Headers:     headers,
		Fingerprint: generateFingerprint(headers),
		SampleRows:  getSampleRows(data, delimiter, skipLines+1, 5),
	}, nil
}

// MapColumns resolves header names to column roles using the candidate lists.
// Matching is case-insensitive; exact matches are preferred over substring
// matches, and within each pass candidates are tried in priority order.
func MapColumns(headers []string) ColumnMap {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	m := ColumnMap{Date: -1, Description: -1, Amount: -1, Credit: -1, Debit: -1, Category: -1}

	m.Date = findColumn(normalized, dateCandidates, nil)
	m.Description = findColumn(normalized, descCandidates, nil)
	m.Credit = findColumn(normalized, creditCandidates, nil)
	m.Debit = findColumn(normalized, debitCandidates, nil)
	m.Category = findColumn(normalized, categoryCandidates, nil)

	// The generic "amount" candidate must not claim "Credit Amount" or
	// "Debit Amount" headers already assigned to the dual-column pair.
	m.Amount = findColumn(normalized, amountCandidates, map[int]bool{
		m.Credit: true, m.Debit: true,
	})

	if m.DualColumn() {
		m.Amount = -1
	}
	return m
}

// findColumn returns the index of the first header matching the earliest
// candidate, exact matches first. Indices in skip are never returned.
func findColumn(headers []string, candidates []string, skip map[int]bool) int {
	for _, cand := range candidates {
		for i, h := range headers {
			if skip[i] {
				continue
			}
			if h == cand {
				return i
			}
		}
	}
	for _, cand := range candidates {
		for i, h := range headers {
			if skip[i] {
				continue
			}
			if strings.Contains(h, cand) {
				return i
			}
		}
	}
	return -1
}

// findHeaderRow locates the header row and its delimiter. Bank exports often
// start with metadata ("Account No: ...", "Statement period: ...") before the
// real header, so lines are scored by column count and keyword hits.
func findHeaderRow(lines []string) (rune, int, error) {
	fallbackIndex := -1
	fallbackDelimiter := rune(0)
	fallbackCount := 0

	keywordIndex := -1
	keywordDelimiter := rune(0)
	keywordCount := 0
	keywordMatches := 0
	keywordScore := 0

	for i, line := range lines {
		if i > 20 {
			break
		}

		line = cleanLine(line, i == 0)
		if line == "" {
			continue
		}
		lineLower := strings.ToLower(line)

		delimiter, count := detectDelimiter(line)
		if count < 1 {
			continue
		}

		matches := 0
		for _, kw := range headerKeywords {
			if strings.Contains(lineLower, kw) {
				matches++
			}
		}

		if matches > 0 {
			// Real headers have many columns and several keyword hits;
			// metadata lines rarely have either.
			score := count*10 + matches
			if keywordIndex == -1 || score > keywordScore {
				keywordScore = score
				keywordCount = count
				keywordMatches = matches
				keywordDelimiter = delimiter
				keywordIndex = i
			}
		} else if count > fallbackCount {
			fallbackCount = count
			fallbackDelimiter = delimiter
			fallbackIndex = i
		}
	}

	// A single delimiter is still a header when several tokens are known
	// header words: minimal "Date,Amount" exports have exactly one comma.
	if keywordIndex >= 0 && (keywordCount >= 2 || keywordMatches >= 2) {
		return keywordDelimiter, keywordIndex, nil
	}
	if fallbackCount >= 2 {
		return fallbackDelimiter, fallbackIndex, nil
	}
	return 0, 0, ErrNoHeadersFound
}

func cleanLine(line string, firstLine bool) string {
	line = strings.TrimRight(line, "\r")
	if firstLine {
		line = strings.TrimPrefix(line, "\uFEFF")
	}
	return strings.TrimSpace(line)
}

func detectDelimiter(line string) (rune, int) {
	delimiters := []rune{';', '\t', ',', '|'}
	bestDelimiter := rune(0)
	bestCount := 0
	for _, d := range delimiters {
		count := strings.Count(line, string(d))
		if count > bestCount {
			bestCount = count
			bestDelimiter = d
		}
	}
	return bestDelimiter, bestCount
}

// generateFingerprint hashes normalized header names so repeated uploads of
// the same export layout can be recognized.
func generateFingerprint(headers []string) string {
	var normalized []string
	for _, h := range headers {
		clean := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToLower(r)
			}
			return -1
		}, h)
		if clean != "" {
			normalized = append(normalized, clean)
		}
	}
	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}

// getSampleRows returns up to maxRows data rows after the header.
func getSampleRows(data []byte, delimiter rune, startLine, maxRows int) [][]string {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	lineNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if lineNum >= startLine {
			rows = append(rows, record)
			if len(rows) >= maxRows {
				break
			}
		}
		lineNum++
	}
	return rows
}
