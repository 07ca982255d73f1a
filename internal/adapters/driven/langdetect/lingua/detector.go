// Package lingua detects the natural language of a text with lingua-go.
package lingua

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"

	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure Detector implements the interface.
var _ driven.LanguageDetector = (*Detector)(nil)

// minRunes is the shortest text the detector will classify.
const minRunes = 20

// codes maps lingua languages to the short codes accepted by the pipeline.
var codes = map[lingua.Language]string{
	lingua.Portuguese: "pt",
	lingua.English:    "en",
	lingua.Spanish:    "es",
}

// Detector chooses between Portuguese, English and Spanish.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector limited to the supported languages.
// Building loads language models, so create one per process.
func New() *Detector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Portuguese, lingua.English, lingua.Spanish).
		WithMinimumRelativeDistance(0.1).
		Build()
	return &Detector{detector: d}
}

// Detect returns "pt", "en" or "es", or false for short or ambiguous text.
func (d *Detector) Detect(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minRunes {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	code, ok := codes[lang]
	return code, ok
}
