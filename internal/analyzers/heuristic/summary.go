package heuristic

import (
	"regexp"
	"strings"
)

const maxSummaryRunes = 500

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// splitSentences splits on runs of terminal punctuation, dropping blanks.
func splitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func summarize(text string) string {
	sentences := splitSentences(text)
	if len(sentences) <= 3 {
		return truncateRunes(text, maxSummaryRunes)
	}

	summary := strings.Join([]string{sentences[0], sentences[1], sentences[len(sentences)-1]}, " ")
	return truncateRunes(summary, maxSummaryRunes)
}
