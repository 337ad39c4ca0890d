// Package normalizer turns raw date and amount tokens from statement files
// into canonical calendar dates and signed decimal amounts. All parsers are
// pure and report failure through an ok flag instead of errors, because a
// single bad token must never abort a whole statement.
package normalizer

import (
	"strings"
	"time"
	"unicode"
)

// Month-name layouts seen across UPI app exports: "Aug 09, 2025" (PhonePe),
// "09 Aug, 2025", "25 January 2025" (SuperMoney).
var monthNameLayouts = []string{
	"Jan 02, 2006",
	"Jan 2, 2006",
	"January 02, 2006",
	"January 2, 2006",
	"02 Jan, 2006",
	"2 Jan, 2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
}

// Last-resort layouts for machine-generated exports.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseDate parses a raw date token into a calendar date (UTC midnight).
// It tries month-name forms first, then numeric day/month/year orderings,
// then ISO forms. Two-digit years below 50 resolve to 20xx, the rest to
// 19xx. Returns ok=false when nothing matches or the components do not
// round-trip (e.g. day 31 in a 30-day month).
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range monthNameLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), true
		}
	}

	if t, ok := parseNumericDate(s); ok {
		return t, true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), true
		}
	}

	return time.Time{}, false
}

// parseNumericDate handles D/M/Y, M/D/Y and Y/M/D with '/', '-' or '.'
// separators. Ordering ambiguity is resolved in that fixed priority, which
// matches the day-first convention of Indian bank exports.
func parseNumericDate(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, ok := atoiStrict(p)
		if !ok {
			return time.Time{}, false
		}
		nums[i] = n
	}

	// Four-digit leading component means Y/M/D.
	if len(parts[0]) == 4 {
		if t, ok := makeDate(nums[0], nums[1], nums[2]); ok {
			return t, true
		}
		return time.Time{}, false
	}

	year := expandYear(nums[2], len(parts[2]))
	if year == 0 {
		return time.Time{}, false
	}

	// D/M/Y first, then M/D/Y.
	if t, ok := makeDate(year, nums[1], nums[0]); ok {
		return t, true
	}
	if t, ok := makeDate(year, nums[0], nums[1]); ok {
		return t, true
	}
	return time.Time{}, false
}

// expandYear resolves 2-digit years: <50 is 20xx, otherwise 19xx.
func expandYear(y, digits int) int {
	switch digits {
	case 4:
		return y
	case 2:
		if y < 50 {
			return 2000 + y
		}
		return 1900 + y
	}
	return 0
}

// makeDate builds a UTC date and rejects component sets that time.Date would
// silently normalize (day 31 rolling into the next month and the like).
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atoiStrict(s string) (int, bool) {
	if s == "" || len(s) > 4 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
