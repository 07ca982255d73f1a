package driving

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// BatchService processes document batches.
type BatchService interface {
	// Process runs every document in the request through extraction,
	// summarisation and, when a query is present, similarity ranking.
	// Per-document failures become failed outcomes; an error is returned
	// only when the run itself cannot proceed.
	Process(ctx context.Context, req domain.BatchRequest) (*domain.BatchRun, error)

	// ProcessSingle runs one document as a batch without a query.
	ProcessSingle(ctx context.Context, doc domain.DocumentInput, language string) (*domain.BatchRun, error)
}
