package heuristic

import (
	"sort"
	"strings"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

const (
	maxCategories         = 3
	maxCategoryConfidence = 0.95
)

type category struct {
	name     string
	keywords []string
}

// categories are matched by keyword containment in the lowercased text.
var categories = []category{
	{"contract", []string{"contrato", "acordo", "prestação", "serviços", "cláusula", "prazo", "valor", "pagamento"}},
	{"report", []string{"relatório", "análise", "dados", "resultado", "conclusão", "período", "mensal", "anual"}},
	{"invoice", []string{"fatura", "nota fiscal", "cobrança", "vencimento", "total", "imposto", "desconto"}},
	{"correspondence", []string{"carta", "email", "comunicado", "informamos", "solicitamos", "atenciosamente"}},
	{"legal", []string{"processo", "tribunal", "advogado", "lei", "artigo", "código", "jurisprudência"}},
	{"technical", []string{"especificação", "manual", "procedimento", "configuração", "sistema", "software"}},
	{"financial", []string{"balanço", "demonstrativo", "receita", "despesa", "lucro", "investimento"}},
}

type categoryScore struct {
	name       string
	confidence float64
}

func categorize(text string) []string {
	lower := strings.ToLower(text)

	scores := make([]categoryScore, 0, len(categories))
	for _, c := range categories {
		matches := 0
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		scores = append(scores, categoryScore{
			name:       c.name,
			confidence: min(maxCategoryConfidence, float64(matches)/float64(len(c.keywords))),
		})
	}

	if len(scores) == 0 {
		return []string{domain.DefaultCategory}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].confidence > scores[j].confidence
	})

	n := min(maxCategories, len(scores))
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = scores[i].name
	}
	return names
}
