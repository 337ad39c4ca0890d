package pattern

import (
	"regexp"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/normalizer"
)

// PhonePe statements print one transaction as
//
//	Feb 13, 2025  Paid to <merchant>  DEBIT  ₹250.00
//
// with the merchant span frequently broken across lines by PDF extraction.
var phonepeRe = regexp.MustCompile(
	`([A-Za-z]{3}\s+\d{1,2},\s+\d{4})\s+(Paid to|Received from)\s+([\s\S]*?)\s+(DEBIT|CREDIT)\s+₹\s*([\d,]+(?:\.\d{1,2})?)`,
)

type phonepeTemplate struct{}

func (phonepeTemplate) Name() string { return "phonepe" }

func (phonepeTemplate) Extract(text string, _ Options) []Match {
	var matches []Match
	for _, m := range phonepeRe.FindAllStringSubmatch(text, -1) {
		date, ok := normalizer.ParseDate(m[1])
		if !ok {
			continue
		}
		amount, ok := normalizer.ParseAmount(m[5])
		if !ok {
			continue
		}

		direction := extraction.DirectionDebit
		if m[4] == "CREDIT" {
			direction = extraction.DirectionCredit
		}

		matches = append(matches, Match{
			Date:      date,
			Merchant:  normalizer.CleanText(m[3]),
			Direction: direction,
			Amount:    amount.Abs(),
		})
	}
	return matches
}
