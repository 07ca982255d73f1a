// Package heuristic implements the text analyzer with fixed lexicons,
// extractive summaries and TF-IDF cosine similarity.
//
// Every exported method is a pure function of its input. Panics are
// recovered and replaced by safe defaults so callers never see them.
package heuristic

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure Analyzer implements the interface.
var _ driven.TextAnalyzer = (*Analyzer)(nil)

// fallbackSummaryRunes is the prefix length used when summarisation fails.
const fallbackSummaryRunes = 200

// Analyzer is a stateless heuristic text analyzer.
type Analyzer struct{}

// New creates a new heuristic analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// recoverTo replaces a panic with fallback and logs it.
func recoverTo[T any](op string, out *T, fallback func() T) {
	if p := recover(); p != nil {
		logger.Warn("analyzer %s panic: %v", op, p)
		*out = fallback()
	}
}

// Summarize returns the first two and the last sentence, capped at 500 runes.
func (a *Analyzer) Summarize(text string) (summary string) {
	defer recoverTo("summarize", &summary, func() string {
		return truncateRunes(text, fallbackSummaryRunes)
	})
	return summarize(text)
}

// Keywords returns up to k frequent non-stop-words.
func (a *Analyzer) Keywords(text string, k int) (keywords []string) {
	defer recoverTo("keywords", &keywords, func() []string {
		return []string{domain.DefaultCategory}
	})
	return topKeywords(text, k)
}

// Sentiment classifies text by lexicon hits.
func (a *Analyzer) Sentiment(text string) (s domain.Sentiment) {
	defer recoverTo("sentiment", &s, domain.NeutralSentiment)
	return sentiment(text)
}

// Categorize returns up to three categories, or "general" when none match.
func (a *Analyzer) Categorize(text string) (categories []string) {
	defer recoverTo("categorize", &categories, func() []string {
		return []string{domain.DefaultCategory}
	})
	return categorize(text)
}

// Similarity scores query against each text with TF-IDF cosine similarity,
// falling back to word overlap when no vocabulary can be built.
func (a *Analyzer) Similarity(query string, texts []string) (scores []float64) {
	defer recoverTo("similarity", &scores, func() []float64 {
		return overlapScores(query, texts)
	})
	return similarity(query, texts)
}

// RelevantExcerpts returns up to maxN sentences of text most similar to query.
func (a *Analyzer) RelevantExcerpts(query, text string, maxN int) (excerpts []string) {
	defer recoverTo("excerpts", &excerpts, func() []string {
		return []string{}
	})
	return relevantExcerpts(query, text, maxN)
}

// truncateRunes cuts s to n runes and appends "..." when it was longer.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	var b strings.Builder
	i := 0
	for _, r := range s {
		if i == n {
			break
		}
		b.WriteRune(r)
		i++
	}
	b.WriteString("...")
	return b.String()
}
