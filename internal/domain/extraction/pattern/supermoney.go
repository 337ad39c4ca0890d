package pattern

import (
	"regexp"
	"strings"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/normalizer"
)

// SuperMoney statements are one-row-per-line tables:
//
//	SIMHADRI SUPER MARKET SBI 7317 -10.00 25 January 2025 SUCCESS
//
// name, bank + account tail, signed amount, long-form date, status.
var supermoneyRe = regexp.MustCompile(
	`(?i)^(.+?)\s+(SBI|HDFC|ICICI|AXIS)\s+(\d+)\s+(-?\d+\.\d+)\s+(\d{1,2}\s+[A-Za-z]+\s+\d{4})\s+(SUCCESS|FAILED|PENDING)$`,
)

// Header and footer lines around the table, skipped outright.
var supermoneySkipWords = []string{
	"transaction history", "powered by", "yes bank",
	"name bank amount date status",
}

type supermoneyTemplate struct{}

func (supermoneyTemplate) Name() string { return "supermoney" }

func (supermoneyTemplate) Extract(text string, _ Options) []Match {
	var matches []Match
	for _, line := range strings.Split(text, "\n") {
		line = normalizer.CleanText(line)
		if line == "" || isSupermoneyChrome(line) {
			continue
		}

		m := supermoneyRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		date, ok := normalizer.ParseDate(m[5])
		if !ok {
			continue
		}
		amount, ok := normalizer.ParseAmount(m[4])
		if !ok {
			continue
		}

		// The row amount is signed: negative means money out.
		direction := extraction.DirectionCredit
		if amount.IsNegative() {
			direction = extraction.DirectionDebit
		}

		match := Match{
			Date:      date,
			Merchant:  normalizer.CleanText(m[1]),
			Direction: direction,
			Amount:    amount.Abs(),
		}
		if status := strings.ToUpper(m[6]); status != "SUCCESS" {
			match.Note = "status " + status
		}
		matches = append(matches, match)
	}
	return matches
}

func isSupermoneyChrome(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range supermoneySkipWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
