package normalizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency markers that precede amounts in Indian statement exports.
var currencyPrefixes = []string{"₹", "Rs.", "RS.", "rs.", "Rs", "RS", "rs", "INR", "inr"}

var spaceRe = regexp.MustCompile(`\s+`)

// ParseAmount parses a raw amount token into a signed decimal. It strips
// currency symbols (₹, Rs., INR), thousands separators and Cr/Dr suffixes;
// negativity comes from an explicit minus sign, parentheses, or a Dr/DEBIT
// marker. Zero amounts are reported as not ok: a zero-value transaction is
// never meaningful in this domain.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		s = strings.TrimSpace(s)
	}

	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	} else if strings.HasPrefix(s, "+") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "+"))
	}

	// Debit/credit suffix markers: "1,234.50 Dr".
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "DR") || strings.HasSuffix(upper, "DEBIT"):
		negative = true
		s = trimSuffixFold(s, "DEBIT")
		s = trimSuffixFold(s, "DR")
	case strings.HasSuffix(upper, "CR") || strings.HasSuffix(upper, "CREDIT"):
		s = trimSuffixFold(s, "CREDIT")
		s = trimSuffixFold(s, "CR")
	}
	s = strings.TrimSpace(s)

	for _, prefix := range currencyPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}

	// A minus sign can also sit between the currency marker and the digits.
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	}

	s = strings.ReplaceAll(s, ",", "")
	s = spaceRe.ReplaceAllString(s, "")
	if s == "" || strings.ContainsAny(s, "-+") {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsZero() {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

func trimSuffixFold(s, suffix string) string {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return strings.TrimSpace(s[:len(s)-len(suffix)])
	}
	return s
}

// CleanText collapses internal whitespace and newlines to single spaces.
// PDF text extraction frequently splits merchant names across lines.
func CleanText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
