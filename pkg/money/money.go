// Package money provides rupee-safe amounts using integer paise and the
// Fowler Money pattern. The extraction pipeline works in shopspring/decimal;
// this package is the display and arithmetic boundary for INR values.
package money

import (
	"encoding/json"
	"errors"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CurrencyINR is the only currency the pipeline handles.
const CurrencyINR = "INR"

var paisePerRupee = decimal.New(1, 2)

// INR is a signed rupee amount held in whole paise. Negative values are
// outflows, matching the pipeline's sign convention.
type INR struct {
	m *money.Money
}

// FromPaise builds an amount from whole paise.
func FromPaise(paise int64) INR {
	return INR{m: money.New(paise, CurrencyINR)}
}

// FromDecimal converts a rupee decimal (e.g. -250.50) into paise, rounding
// half away from zero.
func FromDecimal(d decimal.Decimal) INR {
	return FromPaise(d.Mul(paisePerRupee).Round(0).IntPart())
}

// Zero is the zero rupee amount.
func Zero() INR {
	return FromPaise(0)
}

// Paise returns the amount in whole paise.
func (a INR) Paise() int64 {
	if a.m == nil {
		return 0
	}
	return a.m.Amount()
}

// Decimal returns the amount in rupees.
func (a INR) Decimal() decimal.Decimal {
	return decimal.New(a.Paise(), -2)
}

// IsZero reports whether the amount is zero.
func (a INR) IsZero() bool {
	return a.Paise() == 0
}

// IsOutflow reports whether the amount is a debit (negative).
func (a INR) IsOutflow() bool {
	return a.Paise() < 0
}

// Abs returns the magnitude.
func (a INR) Abs() INR {
	if a.m == nil {
		return Zero()
	}
	return INR{m: a.m.Absolute()}
}

// Negate flips the sign.
func (a INR) Negate() INR {
	if a.m == nil {
		return Zero()
	}
	return INR{m: a.m.Negative()}
}

// Add sums two amounts.
func (a INR) Add(b INR) INR {
	if a.m == nil {
		return b
	}
	if b.m == nil {
		return a
	}
	// Same-currency by construction; go-money cannot fail here.
	sum, _ := a.m.Add(b.m)
	return INR{m: sum}
}

// Sub subtracts b from a.
func (a INR) Sub(b INR) INR {
	return a.Add(b.Negate())
}

// Compare returns -1, 0, or 1.
func (a INR) Compare(b INR) int {
	switch {
	case a.Paise() < b.Paise():
		return -1
	case a.Paise() > b.Paise():
		return 1
	}
	return 0
}

// Display formats the amount with the rupee symbol and grouping, e.g.
// "₹1,234.56".
func (a INR) Display() string {
	if a.m == nil {
		return FromPaise(0).Display()
	}
	return a.m.Display()
}

// String returns the plain decimal form, e.g. "-1234.56".
func (a INR) String() string {
	return a.Decimal().StringFixed(2)
}

// Split divides the amount into n parts that sum exactly to the original,
// spreading the paise remainder over the first parts.
func (a INR) Split(n int) ([]INR, error) {
	if n <= 0 {
		return nil, errors.New("split count must be positive")
	}
	if a.m == nil {
		a = Zero()
	}
	parts, err := a.m.Split(n)
	if err != nil {
		return nil, err
	}
	out := make([]INR, len(parts))
	for i, p := range parts {
		out[i] = INR{m: p}
	}
	return out, nil
}

// MarshalJSON encodes the amount as paise plus a display string.
func (a INR) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Paise   int64  `json:"paise"`
		Display string `json:"display"`
	}{a.Paise(), a.Display()})
}

// UnmarshalJSON decodes the paise field.
func (a *INR) UnmarshalJSON(data []byte) error {
	var v struct {
		Paise int64 `json:"paise"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = FromPaise(v.Paise)
	return nil
}
