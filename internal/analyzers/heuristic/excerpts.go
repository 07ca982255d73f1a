package heuristic

import (
	"sort"
	"strings"
)

// excerptThreshold is the minimum sentence score for an excerpt.
const excerptThreshold = 0.1

func relevantExcerpts(query, text string, maxN int) []string {
	excerpts := []string{}
	if maxN <= 0 {
		return excerpts
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return excerpts
	}

	scores := similarity(query, sentences)
	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	for _, i := range order[:min(maxN, len(order))] {
		if scores[i] > excerptThreshold {
			excerpts = append(excerpts, sentences[i]+".")
		}
	}
	if len(excerpts) > 0 {
		return excerpts
	}

	// Nothing scored: fall back to sentences sharing a literal word with the query.
	queryWords := wordSet(query)
	for _, s := range sentences {
		if sharesWord(queryWords, s) {
			excerpts = append(excerpts, s+".")
			if len(excerpts) == maxN {
				break
			}
		}
	}
	return excerpts
}

func sharesWord(words map[string]struct{}, sentence string) bool {
	for _, w := range strings.Fields(strings.ToLower(sentence)) {
		if _, ok := words[w]; ok {
			return true
		}
	}
	return false
}
