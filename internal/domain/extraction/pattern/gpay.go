package pattern

import (
	"regexp"
	"strings"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/normalizer"
)

// Google Pay activity exports carry no DEBIT/CREDIT keyword; the direction
// comes from the action verb:
//
//	Feb 13, 2025  Paid to <merchant>  ₹250.00
//	Feb 14, 2025  Received from <sender>  ₹1,000.00
var gpayRe = regexp.MustCompile(
	`([A-Za-z]{3}\s+\d{1,2},\s+\d{4})\s+(Paid to|Sent to|Received from)\s+([\s\S]*?)\s+₹\s*([\d,]+(?:\.\d{1,2})?)`,
)

type gpayTemplate struct{}

func (gpayTemplate) Name() string { return "gpay" }

func (gpayTemplate) Extract(text string, _ Options) []Match {
	var matches []Match
	for _, m := range gpayRe.FindAllStringSubmatch(text, -1) {
		date, ok := normalizer.ParseDate(m[1])
		if !ok {
			continue
		}
		amount, ok := normalizer.ParseAmount(m[4])
		if !ok {
			continue
		}

		// A merchant span holding a DEBIT/CREDIT keyword means this is
		// PhonePe-shaped text; leave it for that grammar.
		merchant := normalizer.CleanText(m[3])
		if strings.Contains(merchant, "DEBIT") || strings.Contains(merchant, "CREDIT") {
			continue
		}

		direction := extraction.DirectionDebit
		if m[2] == "Received from" {
			direction = extraction.DirectionCredit
		}

		matches = append(matches, Match{
			Date:      date,
			Merchant:  merchant,
			Direction: direction,
			Amount:    amount.Abs(),
		})
	}
	return matches
}
