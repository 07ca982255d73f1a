package heuristic

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// maxFeatures caps the vocabulary at the most frequent terms of the corpus.
const maxFeatures = 1000

// termPattern matches tokens of two or more word characters.
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func terms(s string) []string {
	return termPattern.FindAllString(strings.ToLower(s), -1)
}

type sparseVector map[string]float64

func (v sparseVector) dot(o sparseVector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	var sum float64
	for term, w := range v {
		sum += w * o[term]
	}
	return sum
}

// tfidfVectors builds L2-normalised TF-IDF vectors with smoothed idf,
// idf(t) = ln((1+n)/(1+df(t))) + 1. It reports false when the corpus has
// no terms at all.
func tfidfVectors(docs []string) ([]sparseVector, bool) {
	counts := make([]map[string]int, len(docs))
	totals := make(map[string]int)
	df := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, t := range terms(doc) {
			counts[i][t]++
			totals[t]++
		}
		for t := range counts[i] {
			df[t]++
		}
	}

	if len(totals) == 0 {
		return nil, false
	}

	vocab := make(map[string]float64, min(len(totals), maxFeatures))
	for _, t := range limitVocabulary(totals) {
		vocab[t] = math.Log(float64(1+len(docs))/float64(1+df[t])) + 1
	}

	vectors := make([]sparseVector, len(docs))
	for i := range docs {
		v := make(sparseVector)
		var norm float64
		for t, c := range counts[i] {
			idf, ok := vocab[t]
			if !ok {
				continue
			}
			w := float64(c) * idf
			v[t] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range v {
				v[t] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors, true
}

// limitVocabulary keeps the maxFeatures most frequent terms, ties alphabetical.
func limitVocabulary(totals map[string]int) []string {
	all := make([]string, 0, len(totals))
	for t := range totals {
		all = append(all, t)
	}
	if len(all) <= maxFeatures {
		return all
	}
	sort.Slice(all, func(i, j int) bool {
		if totals[all[i]] != totals[all[j]] {
			return totals[all[i]] > totals[all[j]]
		}
		return all[i] < all[j]
	})
	return all[:maxFeatures]
}

func similarity(query string, texts []string) []float64 {
	if len(texts) == 0 {
		return []float64{}
	}

	docs := make([]string, 0, len(texts)+1)
	docs = append(docs, query)
	docs = append(docs, texts...)

	vectors, ok := tfidfVectors(docs)
	if !ok {
		return overlapScores(query, texts)
	}

	scores := make([]float64, len(texts))
	for i := range texts {
		scores[i] = domain.ClampConfidence(vectors[0].dot(vectors[i+1]))
	}
	return scores
}

func wordSet(s string) map[string]struct{} {
	return toSet(strings.Fields(strings.ToLower(s))...)
}

// overlapScores is |q ∩ t| / max(|q|, |t|, 1) over whitespace word sets.
func overlapScores(query string, texts []string) []float64 {
	q := wordSet(query)
	scores := make([]float64, len(texts))
	for i, text := range texts {
		t := wordSet(text)
		common := 0
		for w := range q {
			if _, ok := t[w]; ok {
				common++
			}
		}
		denom := max(len(q), len(t), 1)
		scores[i] = domain.ClampConfidence(float64(common) / float64(denom))
	}
	return scores
}
