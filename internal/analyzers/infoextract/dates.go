package infoextract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

const isoDate = "2006-01-02"

var (
	isoDatePattern     = regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`)
	dayFirstPattern    = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
	writtenDatePattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s+de\s+(\p{L}+)\s+de\s+(\d{4})\b`)
)

// months maps Portuguese and Spanish month names to their number.
var months = map[string]int{
	"janeiro": 1, "fevereiro": 2, "março": 3, "marco": 3, "abril": 4, "maio": 5, "junho": 6,
	"julho": 7, "agosto": 8, "setembro": 9, "outubro": 10, "novembro": 11, "dezembro": 12,
	"enero": 1, "febrero": 2, "marzo": 3, "mayo": 5, "junio": 6, "julio": 7,
	"septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
}

// Dates returns dates written as YYYY-MM-DD, DD/MM/YYYY, DD-MM-YYYY or
// "DD de <month> de YYYY". Numeric dates are read day first. ISO holds the
// normalised date when it is a real calendar date.
func Dates(text string) []domain.ExtractedDate {
	var dates []domain.ExtractedDate
	seen := make(map[string]struct{})
	add := func(raw, iso string) {
		if _, ok := seen[raw]; ok {
			return
		}
		seen[raw] = struct{}{}
		dates = append(dates, domain.ExtractedDate{Text: raw, ISO: iso})
	}

	masked := []byte(text)
	mask := func(loc []int) {
		for i := loc[0]; i < loc[1]; i++ {
			masked[i] = ' '
		}
	}

	for _, loc := range isoDatePattern.FindAllIndex(masked, -1) {
		raw := text[loc[0]:loc[1]]
		add(raw, normalise(raw))
		mask(loc)
	}

	for _, m := range dayFirstPattern.FindAllSubmatchIndex(masked, -1) {
		raw := text[m[0]:m[1]]
		day, month, year := text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]]
		add(raw, normaliseParts(year, month, day))
		mask(m[:2])
	}

	for _, m := range writtenDatePattern.FindAllSubmatchIndex(masked, -1) {
		raw := text[m[0]:m[1]]
		day, name, year := text[m[2]:m[3]], strings.ToLower(text[m[4]:m[5]]), text[m[6]:m[7]]
		iso := ""
		if month, ok := months[name]; ok {
			iso = normaliseParts(year, strconv.Itoa(month), day)
		}
		add(raw, iso)
		mask(m[:2])
	}

	if dates == nil {
		return []domain.ExtractedDate{}
	}
	return dates
}

func normaliseParts(year, month, day string) string {
	m, err1 := strconv.Atoi(month)
	d, err2 := strconv.Atoi(day)
	if err1 != nil || err2 != nil {
		return ""
	}
	return normalise(fmt.Sprintf("%s-%02d-%02d", year, m, d))
}

// normalise validates a year-first date and returns it as YYYY-MM-DD,
// or "" when it is not a calendar date.
func normalise(s string) string {
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return ""
	}
	return t.Format(isoDate)
}
