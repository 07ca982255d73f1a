package driven

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// TextExtractor recovers text from the bytes of one document kind.
//
// Extract never panics and never returns an error value: an outright failure
// comes back as a result with empty Text, zero Confidence and Err set.
// Partial failures (one PDF page) only degrade the affected part.
type TextExtractor interface {
	// Kinds returns the document kinds this extractor handles.
	Kinds() []domain.DocumentKind

	// Extract recovers text. language is an OCR language code ("por", "eng", "spa").
	Extract(ctx context.Context, data []byte, language string) domain.ExtractionResult
}

// PDFInspector reads PDF structure and metadata without extracting text.
type PDFInspector interface {
	// Inspect returns page count, document info and text presence.
	Inspect(data []byte) (*domain.PDFInfo, error)
}
