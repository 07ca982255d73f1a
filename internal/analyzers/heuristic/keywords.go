package heuristic

import (
	"regexp"
	"sort"
	"strings"
)

var letterRun = regexp.MustCompile(`\p{L}+`)

const minKeywordRunes = 3

// stopWords are dropped before counting keywords. Portuguese first,
// followed by the most common English and Spanish function words.
var stopWords = toSet(
	// pt
	"que", "para", "com", "uma", "por", "são", "dos", "das", "como", "mais",
	"foi", "ser", "tem", "ter", "seu", "sua", "seus", "suas", "este", "esta",
	"estes", "estas", "isso", "isto", "aqui", "ali", "onde", "quando", "porque",
	"mas", "também", "ainda", "apenas", "muito", "bem", "todo", "toda", "todos",
	"todas", "outro", "outra", "outros", "outras", "não", "nos", "nas", "num",
	"numa", "pelo", "pela", "pelos", "pelas", "entre", "sobre", "após", "sem",
	// en
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"was", "were", "has", "have", "had", "this", "that", "these", "those",
	"with", "from", "they", "them", "their", "there", "which", "will", "would",
	"into", "its", "our", "your", "been", "than", "then", "also", "such",
	// es
	"los", "las", "del", "con", "una", "unos", "unas", "pero", "sus", "esto",
	"esta", "ese", "esa", "hay", "muy", "sin", "sobre", "entre", "cuando",
	"donde", "también", "porque",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// isStopWord reports whether word is in the fixed stop-word set.
func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

type keywordCount struct {
	word  string
	count int
	first int
}

func topKeywords(text string, k int) []string {
	if k <= 0 {
		return []string{}
	}

	counts := make(map[string]*keywordCount)
	order := 0
	for _, tok := range letterRun.FindAllString(strings.ToLower(text), -1) {
		if len([]rune(tok)) < minKeywordRunes || isStopWord(tok) {
			continue
		}
		if c, ok := counts[tok]; ok {
			c.count++
			continue
		}
		counts[tok] = &keywordCount{word: tok, count: 1, first: order}
		order++
	}

	ranked := make([]*keywordCount, 0, len(counts))
	for _, c := range counts {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].first < ranked[j].first
	})

	n := min(k, len(ranked))
	keywords := make([]string, n)
	for i := 0; i < n; i++ {
		keywords[i] = ranked[i].word
	}
	return keywords
}
