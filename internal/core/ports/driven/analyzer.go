package driven

import "github.com/custodia-labs/docsift/internal/core/domain"

// TextAnalyzer derives a summary, keywords, sentiment, categories and
// query similarity from text. Implementations are pure functions of their
// input and never panic to callers.
type TextAnalyzer interface {
	// Summarize returns a short extractive summary.
	Summarize(text string) string

	// Keywords returns up to k salient words.
	Keywords(text string, k int) []string

	// Sentiment returns the polarity of the text.
	Sentiment(text string) domain.Sentiment

	// Categorize returns up to three topical categories.
	Categorize(text string) []string

	// Similarity scores query against each text, in input order, within [0, 1].
	Similarity(query string, texts []string) []float64

	// RelevantExcerpts returns up to maxN sentences of text relevant to query.
	RelevantExcerpts(query, text string, maxN int) []string
}

// InfoExtractor pulls structured fields out of text.
type InfoExtractor interface {
	Extract(text string) domain.ExtractedInfo
}

// LanguageDetector guesses the natural language of a text.
type LanguageDetector interface {
	// Detect returns a short language code ("pt", "en", "es"), or false
	// when the text is too short or ambiguous.
	Detect(text string) (string, bool)
}
