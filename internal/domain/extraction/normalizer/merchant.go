package normalizer

import (
	"regexp"
	"strings"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

// Narration prefixes that carry no merchant information.
var merchantPrefixes = []string{
	"PAID TO ", "RECEIVED FROM ", "PAYMENT TO ", "PAYMENT FROM ",
	"TRANSFER TO ", "TRANSFER FROM ", "SENT TO ",
	"POS ", "NEFT ", "IMPS ", "RTGS ",
}

var (
	trailingRefRe  = regexp.MustCompile(`\s+\d{4,}$`)
	trailingDateRe = regexp.MustCompile(`\s+\d{1,2}/\d{1,2}/?$`)
	digitsOnlyRe   = regexp.MustCompile(`^\d+$`)
	bankCodeRe     = regexp.MustCompile(`^[A-Za-z]{2,6}\d+$`)
)

// MerchantFromDescription recovers a merchant name from a statement
// narration. Bank narrations pack the payee between transfer-mode markers
// and reference numbers ("UPI/512233445566/SWIGGY/swiggy@ybl"); UPI app
// exports lead with "Paid to" / "Received from". Returns UnknownMerchant
// when nothing name-like survives cleaning.
func MerchantFromDescription(desc string) string {
	s := CleanText(desc)
	if s == "" {
		return extraction.UnknownMerchant
	}

	upper := strings.ToUpper(s)
	if mode := narrationMode(upper); mode != "" {
		name := pickNarrationSegment(s[len(mode)+1:])
		if name == "" {
			return extraction.UnknownMerchant
		}
		s = name
	} else {
		for _, prefix := range merchantPrefixes {
			if strings.HasPrefix(upper, prefix) {
				s = s[len(prefix):]
				break
			}
		}
	}

	s = trailingRefRe.ReplaceAllString(s, "")
	s = trailingDateRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" || digitsOnlyRe.MatchString(s) {
		return extraction.UnknownMerchant
	}
	return titleCase(s)
}

// narrationMode reports the transfer-mode marker when the narration is a
// slash or hyphen separated bank record ("UPI/...", "NEFT-...").
func narrationMode(upper string) string {
	for _, mode := range []string{"UPI", "NEFT", "IMPS", "RTGS", "POS"} {
		rest := strings.TrimPrefix(upper, mode)
		if rest != upper && (strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, "-")) {
			return mode
		}
	}
	return ""
}

// pickNarrationSegment chooses the most name-like segment of a slash or
// hyphen separated narration: skips bare reference numbers, VPAs
// (anything with '@') and short bank codes, and prefers longer segments.
func pickNarrationSegment(s string) string {
	segments := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-'
	})

	best := ""
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" || strings.Contains(seg, "@") || digitsOnlyRe.MatchString(seg) ||
			bankCodeRe.MatchString(seg) {
			continue
		}
		if len(seg) <= 4 && seg == strings.ToUpper(seg) {
			continue // bank/mode codes like SBIN, DR, CR
		}
		if len(seg) > len(best) {
			best = seg
		}
	}
	return best
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
