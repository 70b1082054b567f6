// Package keywords provides frequency-based text analysis: n-gram
// extraction and a simple ATS keyword overlap report. Every rule-based
// agent fallback builds on these primitives.
package keywords

import (
	"regexp"
	"sort"
	"strings"

	"resumeforge/internal/types"
)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
		"be", "have", "has", "had", "do", "does", "did", "will", "would", "should",
		"could", "may", "might", "must", "can", "this", "that", "these", "those",
		"i", "you", "he", "she", "it", "we", "they", "what", "which", "who",
		"when", "where", "why", "how", "all", "each", "every", "both", "few",
		"more", "most", "other", "some", "such", "no", "not", "only", "own",
		"same", "so", "than", "too", "very", "just", "about", "into", "through",
		"during", "before", "after", "above", "below", "between", "under", "again",
		"further", "then", "once", "here", "there", "up", "down", "out", "off",
		"over", "any", "our", "their", "your", "its",
	} {
		stopwords[w] = struct{}{}
	}
}

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText lower-cases, strips punctuation except hyphens, and collapses
// whitespace.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// tokens returns the cleaned token stream with stopwords and short
// tokens removed. N-grams are formed over this filtered stream, so a
// bigram never spans a removed stopword boundary.
func tokens(text string) []string {
	words := strings.Split(CleanText(text), " ")
	filtered := words[:0]
	for _, w := range words {
		if _, stop := stopwords[w]; stop || len(w) <= 2 {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}

// ExtractNgrams returns all n-grams over the stopword-filtered token
// stream of text, joined by single spaces.
func ExtractNgrams(text string, n int) []string {
	words := tokens(text)
	if n <= 1 {
		return words
	}
	if len(words) < n {
		return nil
	}
	ngrams := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		ngrams = append(ngrams, strings.Join(words[i:i+n], " "))
	}
	return ngrams
}

// orderedCounter counts terms while remembering first-seen order so that
// equal counts rank in insertion order.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(term string) {
	if _, seen := c.counts[term]; !seen {
		c.order = append(c.order, term)
	}
	c.counts[term]++
}

func (c *orderedCounter) mostCommon(k int) []types.KeywordCount {
	out := make([]types.KeywordCount, 0, len(c.order))
	for _, term := range c.order {
		out = append(out, types.KeywordCount{Term: term, Count: c.counts[term]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// TopNgrams merges 1-gram and 2-gram counts over the same filtered token
// stream and returns the topK most frequent terms, ties broken by
// first-seen order.
func TopNgrams(text string, topK int) []types.KeywordCount {
	counter := newOrderedCounter()
	for _, g := range ExtractNgrams(text, 1) {
		counter.add(g)
	}
	for _, g := range ExtractNgrams(text, 2) {
		counter.add(g)
	}
	return counter.mostCommon(topK)
}

// ATSReport compares the top 2×topK job keywords against the cleaned
// user text. Keywords found at least once become matches (sorted by
// occurrence count descending, truncated to topK); absent keywords
// become gaps (first 10, original keyword order preserved).
func ATSReport(jobText, userText string, topK int) types.ATSReport {
	jobKeywords := TopNgrams(jobText, topK*2)
	userClean := CleanText(userText)

	matches := []types.KeywordCount{}
	gaps := []string{}
	for _, kw := range jobKeywords {
		n := strings.Count(userClean, kw.Term)
		if n > 0 {
			matches = append(matches, types.KeywordCount{Term: kw.Term, Count: n})
		} else {
			gaps = append(gaps, kw.Term)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Count > matches[j].Count
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	if len(gaps) > 10 {
		gaps = gaps[:10]
	}

	return types.ATSReport{TopMatches: matches, TopGaps: gaps}
}
