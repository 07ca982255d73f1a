package heuristic

import (
	"math"
	"strings"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

const maxSentimentConfidence = 0.9

// Lexicon entries match by substring, so "aprovado" also counts "aprovados".
var (
	positiveLexicon = []string{
		"bom", "ótimo", "excelente", "positivo", "sucesso", "qualidade", "garantia",
		"satisfação", "aprovado", "aceito", "acordo", "benefício", "vantagem", "lucro", "ganho",
		"good", "great", "excellent", "success", "approved", "benefit", "profit",
		"bueno", "excelente", "éxito", "beneficio", "ganancia",
	}
	negativeLexicon = []string{
		"ruim", "péssimo", "negativo", "problema", "erro", "falha", "defeito",
		"reclamação", "insatisfação", "rejeitado", "cancelado", "perda", "prejuízo", "dano",
		"bad", "terrible", "problem", "error", "failure", "defect", "rejected", "loss", "damage",
		"malo", "fallo", "pérdida", "daño",
	}
)

func containsAny(word string, lexicon []string) bool {
	for _, entry := range lexicon {
		if strings.Contains(word, entry) {
			return true
		}
	}
	return false
}

func sentiment(text string) domain.Sentiment {
	words := strings.Fields(strings.ToLower(text))

	var pos, neg int
	for _, w := range words {
		if containsAny(w, positiveLexicon) {
			pos++
		}
		if containsAny(w, negativeLexicon) {
			neg++
		}
	}

	if pos == neg {
		return domain.NeutralSentiment()
	}

	label := domain.SentimentPositive
	diff := pos - neg
	if neg > pos {
		label = domain.SentimentNegative
		diff = neg - pos
	}

	confidence := min(maxSentimentConfidence, 0.5+float64(diff)/float64(len(words)))
	return domain.Sentiment{
		Label:      label,
		Confidence: math.Round(confidence*100) / 100,
	}
}
