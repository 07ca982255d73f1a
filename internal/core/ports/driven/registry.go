package driven

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// ExtractorRegistry selects the extractor for a document kind.
// Kinds without a registered extractor fall back to the text extractor.
type ExtractorRegistry interface {
	// Extract recovers text using the extractor registered for kind.
	Extract(ctx context.Context, data []byte, kind domain.DocumentKind, language string) domain.ExtractionResult

	// Register adds an extractor for each of its kinds, replacing earlier ones.
	Register(extractor TextExtractor)

	// Kinds returns all kinds with a registered extractor.
	Kinds() []domain.DocumentKind
}
