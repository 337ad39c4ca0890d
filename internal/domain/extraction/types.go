// Package extraction defines the shared types of the statement extraction
// pipeline: the raw input handed in by callers, the normalized transaction
// records it produces, and the diagnostics that travel with them.
package extraction

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawInput is a statement file as uploaded by the caller. The pipeline never
// mutates it.
type RawInput struct {
	Data      []byte
	Filename  string
	MediaType string
}

// Category is the fixed transaction category enumeration. Categorization is a
// best-effort heuristic; callers may recategorize later.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryInvestment    Category = "Investment"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// PaymentMode distinguishes UPI transfers from manually recorded cash spends.
type PaymentMode string

const (
	PaymentModeUPI  PaymentMode = "UPI"
	PaymentModeCash PaymentMode = "Cash"
)

// Direction is the canonical debit/credit direction from the account holder's
// perspective.
type Direction int

const (
	DirectionDebit Direction = iota
	DirectionCredit
)

func (d Direction) String() string {
	if d == DirectionCredit {
		return "CREDIT"
	}
	return "DEBIT"
}

// UnknownMerchant is used when a merchant name cannot be recovered.
const UnknownMerchant = "Unknown"

// NormalizedTransaction is one fully normalized statement entry.
// Amount is signed: negative = outflow, positive = inflow, never zero.
type NormalizedTransaction struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Merchant    string          `json:"merchant"`
	Category    Category        `json:"category"`
	PaymentMode PaymentMode     `json:"payment_mode"`
	SourceApp   string          `json:"source_app,omitempty"`
}

// DateISO returns the transaction date as yyyy-mm-dd.
func (t NormalizedTransaction) DateISO() string {
	return t.Date.Format("2006-01-02")
}

// Severity classifies a Diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic reports a failure or a degraded-confidence condition for a file,
// row, or text section. Errors mean no transaction was produced for the
// referenced unit; warnings mean the output exists but confidence is lower.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// Ref is an optional row index or line reference, -1 when not applicable.
	Ref int `json:"ref,omitempty"`
}

// ExtractionResult is the complete outcome of processing one file. Results
// are never merged across files inside the pipeline; that is the caller's
// job.
type ExtractionResult struct {
	Transactions []NormalizedTransaction `json:"transactions"`
	Errors       []Diagnostic            `json:"errors"`
	Warnings     []Diagnostic            `json:"warnings"`
}

// NewResult returns an empty result ready to be filled.
func NewResult() *ExtractionResult {
	return &ExtractionResult{
		Transactions: make([]NormalizedTransaction, 0, 64),
		Errors:       make([]Diagnostic, 0),
		Warnings:     make([]Diagnostic, 0),
	}
}

// AddError appends an Error diagnostic. ref < 0 means no row reference.
func (r *ExtractionResult) AddError(ref int, msg string) {
	r.Errors = append(r.Errors, Diagnostic{Severity: SeverityError, Message: msg, Ref: ref})
}

// AddWarning appends a Warning diagnostic. ref < 0 means no row reference.
func (r *ExtractionResult) AddWarning(ref int, msg string) {
	r.Warnings = append(r.Warnings, Diagnostic{Severity: SeverityWarning, Message: msg, Ref: ref})
}
