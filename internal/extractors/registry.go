package extractors

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps document kinds to extractors.
// Kinds with no registered extractor use the text extractor.
type Registry struct {
	mu         sync.RWMutex
	extractors map[domain.DocumentKind]driven.TextExtractor
}

// NewRegistry creates a registry with the given extractors registered in order.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{
		extractors: make(map[domain.DocumentKind]driven.TextExtractor),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for each of its kinds, replacing earlier ones.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kind := range extractor.Kinds() {
		r.extractors[kind] = extractor
	}
}

// Kinds returns all kinds with a registered extractor, sorted.
func (r *Registry) Kinds() []domain.DocumentKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.DocumentKind, 0, len(r.extractors))
	for k := range r.extractors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (r *Registry) lookup(kind domain.DocumentKind) driven.TextExtractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.extractors[kind]; ok {
		return e
	}
	return r.extractors[domain.KindText]
}

// Extract recovers text using the extractor registered for kind.
func (r *Registry) Extract(
	ctx context.Context,
	data []byte,
	kind domain.DocumentKind,
	language string,
) (result domain.ExtractionResult) {
	start := time.Now()

	extractor := r.lookup(kind)
	if extractor == nil {
		return Failed(fmt.Errorf("%w: %s", domain.ErrUnsupportedType, kind), start)
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Warn("extractor panic for %s document: %v", kind, p)
			result = Failed(domain.NewProcessingError(
				domain.ErrorKindExtraction, "extractor panic", fmt.Errorf("%v", p),
			), start)
		}
	}()

	result = extractor.Extract(ctx, data, language)
	if result.Elapsed == 0 {
		result.Elapsed = time.Since(start)
	}
	return result
}

// Failed builds the result of an outright extraction failure.
func Failed(err error, start time.Time) domain.ExtractionResult {
	return domain.ExtractionResult{
		Text:       "",
		Confidence: 0,
		Elapsed:    time.Since(start),
		Err:        err,
	}
}
