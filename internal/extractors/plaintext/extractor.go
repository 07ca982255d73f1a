// Package plaintext decodes text documents.
package plaintext

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor decodes bytes as UTF-8, replacing invalid sequences with U+FFFD.
// Everything that is neither PDF nor image is handled here, including HTML.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Kinds returns the document kinds this extractor handles.
func (e *Extractor) Kinds() []domain.DocumentKind {
	return []domain.DocumentKind{domain.KindText}
}

// Extract decodes data. Decoding never fails, so confidence is always 1.
func (e *Extractor) Extract(_ context.Context, data []byte, language string) domain.ExtractionResult {
	start := time.Now()
	return domain.ExtractionResult{
		Text:       Decode(data),
		Confidence: 1.0,
		Language:   language,
		Elapsed:    time.Since(start),
	}
}

// Decode converts bytes to a string, replacing invalid UTF-8 with U+FFFD.
// Valid input is returned unchanged.
func Decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
