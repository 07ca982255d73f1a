package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnonymousUserID is recorded for text analyses without a caller identity.
const AnonymousUserID = "anonymous"

const defaultKeywordCount = 10

// AnalysisService analyses single texts and inspects PDFs.
type AnalysisService struct {
	analyzer  driven.TextAnalyzer
	info      driven.InfoExtractor
	detector  driven.LanguageDetector
	inspector driven.PDFInspector
	keywords  int
	language  string
	auditor   *auditor
}

// NewAnalysisService creates a new analysis service. detector, inspector
// and sink may be nil.
func NewAnalysisService(
	analyzer driven.TextAnalyzer,
	info driven.InfoExtractor,
	detector driven.LanguageDetector,
	inspector driven.PDFInspector,
	sink driven.AuditSink,
	settings domain.AppSettings,
) *AnalysisService {
	keywords := settings.Analysis.Keywords
	if keywords <= 0 {
		keywords = defaultKeywordCount
	}
	return &AnalysisService{
		analyzer:  analyzer,
		info:      info,
		detector:  detector,
		inspector: inspector,
		keywords:  keywords,
		language:  settings.DefaultLanguage,
		auditor:   newAuditor(sink, settings.Audit.WriteTimeout),
	}
}

// AnalyzeText summarises and classifies text and audits the analysis.
func (s *AnalysisService) AnalyzeText(ctx context.Context, userID, text, language string) (*domain.TextAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required: %w", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		userID = AnonymousUserID
	}
	if strings.TrimSpace(language) == "" {
		language = s.language
	}

	start := time.Now()
	analysis := &domain.TextAnalysis{
		RequestID:  uuid.New().String(),
		WordCount:  len(strings.Fields(text)),
		CharCount:  utf8.RuneCountInString(text),
		Summary:    s.analyzer.Summarize(text),
		Keywords:   s.analyzer.Keywords(text, s.keywords),
		Sentiment:  s.analyzer.Sentiment(text),
		Categories: s.analyzer.Categorize(text),
		Language:   strings.ToLower(strings.TrimSpace(language)),
	}
	if s.detector != nil {
		if detected, ok := s.detector.Detect(text); ok {
			analysis.DetectedLanguage = detected
		}
	}
	analysis.ProcessingTime = time.Since(start).Seconds()

	s.auditor.record(ctx, domain.AuditEntry{
		RequestID: analysis.RequestID,
		UserID:    userID,
		Result: map[string]any{
			"type":       domain.AuditTypeTextAnalysis,
			"word_count": analysis.WordCount,
			"char_count": analysis.CharCount,
			"categories": analysis.Categories,
		},
		ProcessingTime: ptr(analysis.ProcessingTime),
		Timestamp:      time.Now().UTC(),
	})

	return analysis, nil
}

// ExtractInfo pulls structured fields out of text.
func (s *AnalysisService) ExtractInfo(ctx context.Context, text string) (*domain.ExtractedInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info := s.info.Extract(text)
	return &info, nil
}

// InspectPDF reports structure and metadata of a PDF.
func (s *AnalysisService) InspectPDF(ctx context.Context, data []byte) (*domain.PDFInfo, error) {
	if s.inspector == nil {
		return nil, fmt.Errorf("pdf inspection: %w", domain.ErrNotImplemented)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("pdf is empty: %w", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := s.inspector.Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("inspect pdf: %w", err)
	}
	return info, nil
}

// DocumentInfo is not available: processed documents are not retained.
func (s *AnalysisService) DocumentInfo(_ context.Context, documentID string) (*domain.PDFInfo, error) {
	return nil, fmt.Errorf("document %s: stored document metadata: %w", documentID, domain.ErrNotImplemented)
}

// SupportedLanguages lists accepted language codes.
func (s *AnalysisService) SupportedLanguages() []domain.SupportedLanguage {
	return domain.SupportedLanguages()
}

// Close waits for in-flight audit writes.
func (s *AnalysisService) Close() error {
	s.auditor.wait()
	return nil
}
