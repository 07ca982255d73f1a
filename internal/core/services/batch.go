package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure BatchOrchestrator implements the interface.
var _ driving.BatchService = (*BatchOrchestrator)(nil)

// LegacyUserID is the user recorded for single-document uploads.
const LegacyUserID = "legacy_user"

const defaultMaxExcerpts = 3

// Justification band edges. Comparisons are strict.
const (
	highRelevanceAbove     = 0.7
	moderateRelevanceAbove = 0.4
)

// BatchOrchestrator runs a batch of documents through extraction, summary
// and optional query ranking. Every input document yields exactly one
// outcome; a failing document never affects the others.
type BatchOrchestrator struct {
	registry driven.ExtractorRegistry
	analyzer driven.TextAnalyzer
	settings domain.PipelineSettings
	excerpts int
	language string
	auditor  *auditor
}

// NewBatchOrchestrator creates a batch orchestrator. sink may be nil, in
// which case runs are not audited.
func NewBatchOrchestrator(
	registry driven.ExtractorRegistry,
	analyzer driven.TextAnalyzer,
	sink driven.AuditSink,
	settings domain.AppSettings,
) *BatchOrchestrator {
	excerpts := settings.Analysis.MaxExcerpts
	if excerpts <= 0 {
		excerpts = defaultMaxExcerpts
	}
	return &BatchOrchestrator{
		registry: registry,
		analyzer: analyzer,
		settings: settings.Pipeline,
		excerpts: excerpts,
		language: settings.DefaultLanguage,
		auditor:  newAuditor(sink, settings.Audit.WriteTimeout),
	}
}

// Process runs every document of req and returns the aggregated run.
// A malformed request fails as a whole before any document is touched.
func (o *BatchOrchestrator) Process(ctx context.Context, req domain.BatchRequest) (*domain.BatchRun, error) {
	start := time.Now()
	query := req.NormalisedQuery()

	if err := o.validate(req); err != nil {
		o.auditor.record(ctx, domain.AuditEntry{
			RequestID: req.RequestID,
			UserID:    req.UserID,
			Query:     query,
			Result: map[string]any{
				"type":            domain.AuditTypeBatch,
				"total_documents": len(req.Documents),
				"error_kind":      domain.KindOf(err).String(),
			},
			Error:     ptr(err.Error()),
			Timestamp: time.Now().UTC(),
		})
		return nil, err
	}

	language := req.Language
	if strings.TrimSpace(language) == "" {
		language = o.language
	}
	language = domain.NormaliseLanguage(language)
	logger.Info("Processing batch %s: %d documents (language %s, query %t)",
		req.RequestID, len(req.Documents), language, query != nil)

	results := o.processAll(ctx, req.Documents, query, language)

	run := &domain.BatchRun{
		RequestID:      req.RequestID,
		UserID:         req.UserID,
		Query:          query,
		TotalDocuments: len(results),
		Results:        results,
	}
	for _, outcome := range results {
		if outcome.Succeeded() {
			run.SuccessfulDocuments++
		} else {
			run.FailedDocuments++
		}
	}

	if run.HasQuery() {
		// Failed documents carry no score and sink to the bottom as 0.
		sort.SliceStable(run.Results, func(i, j int) bool {
			return run.Results[i].Score() > run.Results[j].Score()
		})
	}

	run.TotalProcessingTime = time.Since(start).Seconds()
	run.Timestamp = time.Now().UTC()

	logger.Info("Batch %s complete: %d succeeded, %d failed in %.2fs",
		run.RequestID, run.SuccessfulDocuments, run.FailedDocuments, run.TotalProcessingTime)

	o.auditor.record(ctx, domain.AuditEntry{
		RequestID:      run.RequestID,
		UserID:         run.UserID,
		Query:          run.Query,
		Result:         runMetadata(run),
		ProcessingTime: ptr(run.TotalProcessingTime),
		Timestamp:      run.Timestamp,
	})

	return run, nil
}

// ProcessSingle runs a one-document batch without a query, recorded
// under a generated request id and the legacy user.
func (o *BatchOrchestrator) ProcessSingle(
	ctx context.Context,
	doc domain.DocumentInput,
	language string,
) (*domain.BatchRun, error) {
	return o.Process(ctx, domain.BatchRequest{
		RequestID: uuid.New().String(),
		UserID:    LegacyUserID,
		Language:  language,
		Documents: []domain.DocumentInput{doc},
	})
}

// Close waits for in-flight audit writes.
func (o *BatchOrchestrator) Close() error {
	o.auditor.wait()
	return nil
}

func (o *BatchOrchestrator) validate(req domain.BatchRequest) error {
	switch {
	case strings.TrimSpace(req.RequestID) == "":
		return domain.NewProcessingError(domain.ErrorKindInvalidInput, "request id is required", domain.ErrInvalidInput)
	case strings.TrimSpace(req.UserID) == "":
		return domain.NewProcessingError(domain.ErrorKindInvalidInput, "user id is required", domain.ErrInvalidInput)
	case len(req.Documents) == 0:
		return domain.NewProcessingError(domain.ErrorKindInvalidInput,
			"at least one document is required", domain.ErrInvalidInput)
	case o.settings.MaxDocuments > 0 && len(req.Documents) > o.settings.MaxDocuments:
		return domain.NewProcessingError(domain.ErrorKindInvalidInput,
			fmt.Sprintf("%d documents exceeds the limit of %d", len(req.Documents), o.settings.MaxDocuments),
			domain.ErrTooManyDocuments)
	}
	return nil
}

// processAll returns outcomes in input order regardless of completion order.
func (o *BatchOrchestrator) processAll(
	ctx context.Context,
	docs []domain.DocumentInput,
	query *string,
	language string,
) []domain.DocumentOutcome {
	results := make([]domain.DocumentOutcome, len(docs))

	var limiter *rate.Limiter
	if o.settings.DocumentsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.settings.DocumentsPerSecond), 1)
	}

	if o.settings.Workers <= 1 {
		for i, doc := range docs {
			results[i] = o.paced(ctx, limiter, doc, query, language)
		}
		return results
	}

	// Workers never return an error, so one document cannot cancel another.
	var g errgroup.Group
	g.SetLimit(o.settings.Workers)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = o.paced(ctx, limiter, doc, query, language)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// paced waits for the limiter before processing doc.
func (o *BatchOrchestrator) paced(
	ctx context.Context,
	limiter *rate.Limiter,
	doc domain.DocumentInput,
	query *string,
	language string,
) domain.DocumentOutcome {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			// Wait fails early when the deadline would pass before a token.
			kind := domain.KindOf(ctx.Err())
			if kind == domain.ErrorKindNone {
				kind = domain.ErrorKindTimeout
			}
			return failedOutcome(newOutcome(doc), domain.NewProcessingError(kind, "waiting for rate limit", err), 0)
		}
	}
	return o.processDocument(ctx, doc, query, language)
}

// processDocument takes one document from PENDING to COMPLETED or FAILED.
func (o *BatchOrchestrator) processDocument(
	ctx context.Context,
	doc domain.DocumentInput,
	query *string,
	language string,
) domain.DocumentOutcome {
	start := time.Now()
	outcome := newOutcome(doc)

	if err := ctx.Err(); err != nil {
		return failedOutcome(outcome, err, time.Since(start))
	}
	if o.settings.MaxDocumentBytes > 0 && len(doc.Content) > o.settings.MaxDocumentBytes {
		err := domain.NewProcessingError(domain.ErrorKindInvalidInput,
			fmt.Sprintf("%s is %d bytes, limit is %d", doc.Filename, len(doc.Content), o.settings.MaxDocumentBytes),
			domain.ErrDocumentTooLarge)
		return failedOutcome(outcome, err, time.Since(start))
	}

	logger.Debug("Processing: %s (%s)", doc.Filename, doc.ResolvedKind())

	docCtx := ctx
	if o.settings.DocumentTimeout > 0 {
		var cancel context.CancelFunc
		docCtx, cancel = context.WithTimeout(ctx, o.settings.DocumentTimeout)
		defer cancel()
	}

	type result struct {
		outcome domain.DocumentOutcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		out, err := o.analyse(docCtx, outcome, doc, query, language)
		done <- result{outcome: out, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			logger.Debug("Failed to process %s: %v", doc.Filename, res.err)
			return failedOutcome(outcome, res.err, time.Since(start))
		}
		res.outcome.Status = domain.StatusCompleted
		res.outcome.ProcessingTime = time.Since(start).Seconds()
		return res.outcome
	case <-docCtx.Done():
		// The late result lands in the buffered channel and is dropped.
		err := domain.NewProcessingError(domain.KindOf(docCtx.Err()),
			fmt.Sprintf("processing %s did not finish", doc.Filename), docCtx.Err())
		logger.Debug("Abandoned %s: %v", doc.Filename, err)
		return failedOutcome(outcome, err, time.Since(start))
	}
}

// analyse runs extraction, summary and scoring. Panics in collaborators
// are turned into internal errors.
func (o *BatchOrchestrator) analyse(
	ctx context.Context,
	outcome domain.DocumentOutcome,
	doc domain.DocumentInput,
	query *string,
	language string,
) (out domain.DocumentOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.NewProcessingError(domain.ErrorKindInternal, fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	extraction := o.registry.Extract(ctx, doc.Content, doc.ResolvedKind(), language)
	if extraction.Failed() {
		kind := domain.KindOf(extraction.Err)
		if kind == domain.ErrorKindInternal {
			kind = domain.ErrorKindExtraction
		}
		return outcome, domain.NewProcessingError(kind, "extraction failed", extraction.Err)
	}

	text := extraction.Text
	summary := o.analyzer.Summarize(text)
	outcome.ExtractedText = &text
	outcome.Summary = &summary

	if query == nil {
		return outcome, nil
	}

	score := 0.0
	if scores := o.analyzer.Similarity(*query, []string{text}); len(scores) > 0 {
		score = domain.ClampConfidence(scores[0])
	}
	excerpts := o.analyzer.RelevantExcerpts(*query, text, o.excerpts)
	if excerpts == nil {
		excerpts = []string{}
	}

	outcome.SimilarityScore = &score
	outcome.Justification = ptr(Justification(score))
	outcome.RelevantExcerpts = excerpts
	return outcome, nil
}

// Justification describes a similarity score in one of three bands.
func Justification(score float64) string {
	switch {
	case score > highRelevanceAbove:
		return fmt.Sprintf("Highly relevant document (score: %.2f) - contains information related to the query", score)
	case score > moderateRelevanceAbove:
		return fmt.Sprintf("Moderately relevant document (score: %.2f) - has some related information", score)
	default:
		return fmt.Sprintf("Low relevance document (score: %.2f) - little information related to the query", score)
	}
}

func newOutcome(doc domain.DocumentInput) domain.DocumentOutcome {
	return domain.DocumentOutcome{
		DocumentID: uuid.New().String(),
		Filename:   doc.Filename,
	}
}

// failedOutcome clears every result field of outcome and records err.
func failedOutcome(outcome domain.DocumentOutcome, err error, elapsed time.Duration) domain.DocumentOutcome {
	return domain.DocumentOutcome{
		DocumentID:     outcome.DocumentID,
		Filename:       outcome.Filename,
		Status:         domain.StatusFailed,
		ProcessingTime: elapsed.Seconds(),
		ErrorKind:      domain.KindOf(err),
		ErrorMessage:   ptr(err.Error()),
	}
}

// runMetadata holds aggregate counts only, never document content.
func runMetadata(run *domain.BatchRun) map[string]any {
	return map[string]any{
		"type":                 domain.AuditTypeBatch,
		"total_documents":      run.TotalDocuments,
		"successful_documents": run.SuccessfulDocuments,
		"failed_documents":     run.FailedDocuments,
		"has_query":            run.HasQuery(),
		"processing_mode":      run.Mode(),
	}
}

func ptr[T any](v T) *T {
	return &v
}
