package driving

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// AnalysisService analyses individual texts and documents.
type AnalysisService interface {
	// AnalyzeText summarises and classifies text and records the run in the audit trail.
	AnalyzeText(ctx context.Context, userID, text, language string) (*domain.TextAnalysis, error)

	// ExtractInfo pulls emails, phones, URLs, dates, tax ids and money values out of text.
	ExtractInfo(ctx context.Context, text string) (*domain.ExtractedInfo, error)

	// InspectPDF reports page count, metadata and text presence of a PDF.
	InspectPDF(ctx context.Context, data []byte) (*domain.PDFInfo, error)

	// DocumentInfo returns stored metadata for a processed document.
	// Documents are not retained, so this returns domain.ErrNotImplemented.
	DocumentInfo(ctx context.Context, documentID string) (*domain.PDFInfo, error)

	// SupportedLanguages lists accepted language codes.
	SupportedLanguages() []domain.SupportedLanguage
}
