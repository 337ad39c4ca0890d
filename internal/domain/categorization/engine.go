// Package categorization assigns a spending category to free-text
// transaction descriptions using keyword tables. It is a best-effort
// heuristic, not a classifier: callers may override the result later.
package categorization

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

// Engine matches descriptions against all category keywords in a single pass
// using the Aho-Corasick algorithm. Time complexity is O(n + m) where n is
// the text length and m the number of matches, independent of the number of
// keywords.
type Engine struct {
	matcher *ahocorasick.Matcher
	// categoryOf[i] is the category of pattern i, rank[i] its priority rank
	// (lower rank wins).
	categoryOf []extraction.Category
	rank       []int
	fuzzy      *fuzzyFallback
	mu         sync.RWMutex
}

// NewEngine builds the engine from the built-in keyword tables.
func NewEngine() *Engine {
	e := &Engine{}
	e.build()
	return e
}

func (e *Engine) build() {
	e.mu.Lock()
	defer e.mu.Unlock()

	var patterns [][]byte
	for rankIdx, cat := range categoryPriority {
		for _, kw := range categoryKeywords[cat] {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			patterns = append(patterns, []byte(kw))
			e.categoryOf = append(e.categoryOf, cat)
			e.rank = append(e.rank, rankIdx)
		}
	}
	e.matcher = ahocorasick.NewMatcher(patterns)
	e.fuzzy = newFuzzyFallback()
}

// Categorize maps a description (plus optional merchant) to a category.
// The concatenation is lower-cased and tested against all keyword tables;
// among hits, the category earliest in the priority order wins. No hit
// falls through to a fuzzy pass, then to Miscellaneous. Total over every
// input, including the empty string.
func (e *Engine) Categorize(description, merchant string) extraction.Category {
	e.mu.RLock()
	defer e.mu.RUnlock()

	text := strings.ToLower(strings.TrimSpace(description + " " + merchant))
	if text == "" {
		return extraction.CategoryMiscellaneous
	}

	hits := e.matcher.Match([]byte(text))
	if len(hits) > 0 {
		best := -1
		for _, idx := range hits {
			if idx < 0 || idx >= len(e.rank) {
				continue
			}
			if best == -1 || e.rank[idx] < e.rank[best] {
				best = idx
			}
		}
		if best >= 0 {
			return e.categoryOf[best]
		}
	}

	if cat, ok := e.fuzzy.match(text); ok {
		return cat
	}
	return extraction.CategoryMiscellaneous
}
