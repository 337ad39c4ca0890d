package pattern

import (
	"regexp"
	"strings"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/normalizer"
)

// The generic grammar is the last resort for statement layouts nothing else
// recognizes: any line carrying a numeric date and a money token
//
//	15/02/2025  UPI/443312/SWIGGY  ₹250.00 Dr
//
// is treated as one transaction, with the remainder of the line as the
// narration.
var (
	genericDateRe   = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)
	genericAmountRe = regexp.MustCompile(`[-+]?\s*(?:₹|Rs\.?|INR)\s*[\d,]+(?:\.\d{1,2})?|[-+]?[\d,]*\d\.\d{1,2}`)
	genericDebitRe  = regexp.MustCompile(`(?i)\b(dr|debit|withdrawal)\b`)
	genericCreditRe = regexp.MustCompile(`(?i)\b(cr|credit|deposit)\b`)
)

type genericTemplate struct{}

func (genericTemplate) Name() string { return "generic" }

func (genericTemplate) Extract(text string, _ Options) []Match {
	var matches []Match
	for _, line := range strings.Split(text, "\n") {
		line = normalizer.CleanText(line)
		if line == "" {
			continue
		}

		dateToken := genericDateRe.FindString(line)
		if dateToken == "" {
			continue
		}
		date, ok := normalizer.ParseDate(dateToken)
		if !ok {
			continue
		}

		// Cut the date away first so "15.02.2025" can never double as an
		// amount.
		rest := strings.Replace(line, dateToken, " ", 1)
		amountTokens := genericAmountRe.FindAllString(rest, -1)
		if len(amountTokens) == 0 {
			continue
		}
		// The rightmost money token is taken as the amount; earlier ones are
		// usually reference numbers.
		amountToken := amountTokens[len(amountTokens)-1]
		amount, ok := normalizer.ParseAmount(amountToken)
		if !ok {
			continue
		}

		direction := extraction.DirectionCredit
		switch {
		case genericDebitRe.MatchString(line) || amount.IsNegative():
			direction = extraction.DirectionDebit
		case genericCreditRe.MatchString(line):
			direction = extraction.DirectionCredit
		}

		narration := strings.Replace(rest, amountToken, " ", 1)
		narration = genericDebitRe.ReplaceAllString(narration, " ")
		narration = genericCreditRe.ReplaceAllString(narration, " ")

		matches = append(matches, Match{
			Date:      date,
			Merchant:  normalizer.CleanText(narration),
			Direction: direction,
			Amount:    amount.Abs(),
		})
	}
	return matches
}
