package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/normalizer"
)

// Paytm statements are block-oriented: a transaction starts with a year-less
// date line and the merchant, direction and amount follow on their own lines:
//
//	15 Jul
//	5:04 PM
//	Paid to Sharma Tea Stall
//	- Rs.22
//	UPI Ref No. 5520...
var (
	paytmDateRe   = regexp.MustCompile(`^(\d{1,2}\s+[A-Za-z]{3})\b`)
	paytmActionRe = regexp.MustCompile(`(Paid to|Received from)\s+(.+)`)
	paytmAmountRe = regexp.MustCompile(`([-+])?\s*Rs\.\s*([\d,]+(?:\.\d{1,2})?)`)
)

// paytmLookahead bounds how far below a date line the merchant is searched.
const paytmLookahead = 10

type paytmTemplate struct{}

func (paytmTemplate) Name() string { return "paytm" }

func (paytmTemplate) Extract(text string, opts Options) []Match {
	year := opts.referenceYear()

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	var matches []Match
	for i, line := range lines {
		dateMatch := paytmDateRe.FindStringSubmatch(line)
		if dateMatch == nil {
			continue
		}
		date, ok := normalizer.ParseDate(fmt.Sprintf("%s %d", dateMatch[1], year))
		if !ok {
			continue
		}

		merchant := ""
		direction := extraction.DirectionDebit
		end := i + 1 + paytmLookahead
		if end > len(lines) {
			end = len(lines)
		}
		for j := i + 1; j < end; j++ {
			if m := paytmActionRe.FindStringSubmatch(lines[j]); m != nil {
				merchant = normalizer.CleanText(m[2])
				if m[1] == "Received from" {
					direction = extraction.DirectionCredit
				}
				break
			}
		}
		if merchant == "" {
			continue
		}

		// The amount sits somewhere before the next transaction block.
		for j := i + 1; j < len(lines); j++ {
			if j != i+1 && paytmDateRe.MatchString(lines[j]) {
				break
			}
			m := paytmAmountRe.FindStringSubmatch(lines[j])
			if m == nil {
				continue
			}
			amount, ok := normalizer.ParseAmount(m[2])
			if !ok {
				break
			}
			if m[1] == "-" {
				direction = extraction.DirectionDebit
			}
			matches = append(matches, Match{
				Date:      date,
				Merchant:  merchant,
				Direction: direction,
				Amount:    amount.Abs(),
			})
			break
		}
	}
	return matches
}
