package categorization

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

// maxFuzzyDistance bounds how mangled a token may be and still count as a
// keyword hit. OCR output typically drops or swaps one or two characters.
const maxFuzzyDistance = 2

// fuzzyFallback catches keyword hits the exact matcher misses, mainly in
// OCR-extracted text ("swigqy", "zomat0"). Only multi-word descriptions are
// split; each token is ranked against every keyword of similar length.
type fuzzyFallback struct {
	keywords []string
	category []extraction.Category
}

func newFuzzyFallback() *fuzzyFallback {
	f := &fuzzyFallback{}
	for _, cat := range categoryPriority {
		for _, kw := range categoryKeywords[cat] {
			// Short keywords produce too many false positives at distance 2.
			if len(kw) < 5 || strings.ContainsRune(kw, ' ') {
				continue
			}
			f.keywords = append(f.keywords, kw)
			f.category = append(f.category, cat)
		}
	}
	return f
}

func (f *fuzzyFallback) match(text string) (extraction.Category, bool) {
	bestIdx := -1
	bestRank := 0
	for _, token := range strings.Fields(text) {
		if len(token) < 5 {
			continue
		}
		for i, kw := range f.keywords {
			if abs(len(token)-len(kw)) > maxFuzzyDistance {
				continue
			}
			rank := fuzzy.RankMatchNormalizedFold(token, kw)
			if rank < 0 || rank > maxFuzzyDistance {
				continue
			}
			if bestIdx == -1 || rank < bestRank {
				bestIdx = i
				bestRank = rank
			}
		}
	}
	if bestIdx == -1 {
		return extraction.CategoryMiscellaneous, false
	}
	return f.category[bestIdx], true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
