// Package pattern extracts transaction tuples from unstructured statement
// text. Each supported UPI app owns one structural grammar over the linear
// text; a registry tries them in a fixed priority order and keeps the first
// grammar that recognizes anything.
package pattern

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

// Match is one recognized transaction tuple. Amount is a magnitude; the
// signed value comes from Direction.
type Match struct {
	Date      time.Time
	Merchant  string
	Direction extraction.Direction
	Amount    decimal.Decimal
	// Note carries degraded-confidence context ("status FAILED"); empty for
	// clean matches.
	Note string
}

// Signed returns the amount with the direction applied: debits negative,
// credits positive.
func (m Match) Signed() decimal.Decimal {
	if m.Direction == extraction.DirectionDebit {
		return m.Amount.Neg()
	}
	return m.Amount
}

// Options tune grammar behavior.
type Options struct {
	// ReferenceYear resolves year-less dates (Paytm prints "15 Jul" only).
	// Zero means the current year; batch callers should pass the statement
	// year explicitly so reprocessing a file years later yields the same
	// output.
	ReferenceYear int
}

func (o Options) referenceYear() int {
	if o.ReferenceYear != 0 {
		return o.ReferenceYear
	}
	return time.Now().UTC().Year()
}

// Template is one app-specific statement grammar.
type Template interface {
	Name() string
	Extract(text string, opts Options) []Match
}

// Registry holds the known templates in priority order.
type Registry struct {
	templates []Template
}

// NewRegistry builds the default registry. More specific grammars come
// first; the generic line grammar is the last resort.
func NewRegistry() *Registry {
	return &Registry{templates: []Template{
		phonepeTemplate{},
		gpayTemplate{},
		paytmTemplate{},
		supermoneyTemplate{},
		genericTemplate{},
	}}
}

// Extract runs the registry against the text and returns the matches of the
// first template that recognizes anything, plus that template's name. When
// appHint names a known template it is tried first. No match from any
// template returns an empty slice; the caller decides how loudly to report
// that.
func (r *Registry) Extract(text, appHint string, opts Options) ([]Match, string) {
	if text == "" {
		return nil, ""
	}

	tried := ""
	if appHint != "" {
		for _, tpl := range r.templates {
			if strings.EqualFold(tpl.Name(), appHint) {
				if matches := tpl.Extract(text, opts); len(matches) > 0 {
					return matches, tpl.Name()
				}
				tried = tpl.Name()
				break
			}
		}
	}

	for _, tpl := range r.templates {
		if tpl.Name() == tried {
			continue
		}
		if matches := tpl.Extract(text, opts); len(matches) > 0 {
			return matches, tpl.Name()
		}
	}
	return nil, ""
}

// Names lists the registered template names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.templates))
	for i, tpl := range r.templates {
		names[i] = tpl.Name()
	}
	return names
}
