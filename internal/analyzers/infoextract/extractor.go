// Package infoextract pulls structured fields out of free text: email
// addresses, Brazilian phone numbers, URLs, dates, CPF/CNPJ tax ids and
// monetary values.
package infoextract

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.InfoExtractor = (*Extractor)(nil)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"{}|\\^\x60\[\]]+`)

	// Phone patterns are tried most specific first.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+55\s*\d{2}\s*\d{4,5}-?\d{4}`),
		regexp.MustCompile(`\(\d{2}\)\s*\d{4,5}-?\d{4}`),
		regexp.MustCompile(`\b\d{2}\s*\d{4,5}-?\d{4}\b`),
	}

	cnpjPattern = regexp.MustCompile(`\b\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}\b`)
	cpfPattern  = regexp.MustCompile(`\b\d{3}\.?\d{3}\.?\d{3}-?\d{2}\b`)

	moneyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`US\$\s*\d{1,3}(?:,\d{3})*(?:\.\d{2})?`),
		regexp.MustCompile(`R\$\s*\d{1,3}(?:\.\d{3})*(?:,\d{2})?`),
		regexp.MustCompile(`(?i)\b\d{1,3}(?:\.\d{3})*(?:,\d{2})?\s*reais?\b`),
	}
)

// Extractor is a stateless regular-expression field extractor.
type Extractor struct{}

// New creates a new extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns every field found in text, de-duplicated in first-seen order.
func (e *Extractor) Extract(text string) domain.ExtractedInfo {
	return domain.ExtractedInfo{
		Emails:         Emails(text),
		Phones:         Phones(text),
		URLs:           URLs(text),
		Dates:          Dates(text),
		Documents:      TaxIDs(text),
		MonetaryValues: MonetaryValues(text),
	}
}

// Emails returns email addresses.
func Emails(text string) []string {
	return unique(emailPattern.FindAllString(text, -1))
}

// URLs returns http and https URLs.
func URLs(text string) []string {
	return unique(urlPattern.FindAllString(text, -1))
}

// Phones returns Brazilian phone numbers. A span matched by a more specific
// pattern is not matched again by a looser one.
func Phones(text string) []string {
	return unique(findMasked(text, phonePatterns))
}

// TaxIDs returns CNPJ and CPF numbers, CNPJ first.
func TaxIDs(text string) []string {
	return unique(findMasked(text, []*regexp.Regexp{cnpjPattern, cpfPattern}))
}

// MonetaryValues returns amounts in reais and US dollars.
func MonetaryValues(text string) []string {
	return unique(findMasked(text, moneyPatterns))
}

// findMasked applies patterns in order, blanking each match so later
// patterns cannot match inside it.
func findMasked(text string, patterns []*regexp.Regexp) []string {
	masked := []byte(text)
	var found []string
	for _, p := range patterns {
		for _, loc := range p.FindAllIndex(masked, -1) {
			found = append(found, text[loc[0]:loc[1]])
			for i := loc[0]; i < loc[1]; i++ {
				masked[i] = ' '
			}
		}
	}
	return found
}

// unique trims and de-duplicates values, keeping first-seen order.
func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
