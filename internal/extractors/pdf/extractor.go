// Package pdf recovers text from PDF documents.
//
// Each page's embedded text layer is used when it has content. Pages without
// one are rasterised and passed through OCR. A failure on one page only
// empties that page.
package pdf

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure Extractor implements the interfaces.
var (
	_ driven.TextExtractor = (*Extractor)(nil)
	_ driven.PDFInspector  = (*Extractor)(nil)
)

// Page confidences.
const (
	textLayerConfidence = 0.95
	maxOCRConfidence    = 0.8
	ocrDivisor          = 1000.0
	pageSeparator       = "\n\n"
	inspectPages        = 3
)

// Extractor reads PDF text layers and OCRs scanned pages.
type Extractor struct {
	rasterizer driven.PageRasterizer
	ocr        driven.OCREngine
	open       opener
}

// New creates a PDF extractor. Either collaborator may be nil, in which case
// pages without a text layer yield no text.
func New(rasterizer driven.PageRasterizer, ocr driven.OCREngine) *Extractor {
	return &Extractor{
		rasterizer: rasterizer,
		ocr:        ocr,
		open:       openPDF,
	}
}

// Kinds returns the document kinds this extractor handles.
func (e *Extractor) Kinds() []domain.DocumentKind {
	return []domain.DocumentKind{domain.KindPDF}
}

// Extract recovers the text of every page, joined by blank lines.
// Confidence is the mean page confidence; a PDF with no pages scores 0.
func (e *Extractor) Extract(ctx context.Context, data []byte, language string) domain.ExtractionResult {
	start := time.Now()

	doc, err := e.open(data)
	if err != nil {
		logger.Debug("pdf open failed: %v", err)
		return domain.ExtractionResult{Language: language, Elapsed: time.Since(start), Err: err}
	}

	n := doc.NumPage()
	pages := make([]string, 0, n)
	var total float64

	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return domain.ExtractionResult{Language: language, Elapsed: time.Since(start), Err: err}
		}
		text, conf := e.extractPage(ctx, doc, data, i, language)
		pages = append(pages, text)
		total += conf
	}

	var confidence float64
	if n > 0 {
		confidence = domain.ClampConfidence(total / float64(n))
	}

	logger.Debug("pdf extracted %d pages, confidence %.2f", n, confidence)
	return domain.ExtractionResult{
		Text:       strings.Join(pages, pageSeparator),
		Confidence: confidence,
		Language:   language,
		PageCount:  n,
		Elapsed:    time.Since(start),
	}
}

// extractPage returns the text and confidence of one 1-based page.
func (e *Extractor) extractPage(
	ctx context.Context,
	doc document,
	data []byte,
	page int,
	language string,
) (string, float64) {
	text, err := doc.PageText(page)
	if err != nil {
		logger.Debug("page %d text layer: %v", page, err)
	} else if strings.TrimSpace(text) != "" {
		return text, textLayerConfidence
	}

	if e.rasterizer == nil || e.ocr == nil {
		logger.Debug("page %d has no text layer and OCR is not configured", page)
		return "", 0
	}

	img, err := e.rasterizer.RasterizePage(ctx, data, page)
	if err != nil {
		logger.Debug("page %d rasterise: %v", page, err)
		return "", 0
	}

	ocrText, err := e.ocr.Recognize(ctx, img, language)
	if err != nil {
		logger.Debug("page %d ocr: %v", page, err)
		return "", 0
	}
	return ocrText, OCRConfidence(ocrText)
}

// OCRConfidence scores OCR output of one page by its trimmed length.
func OCRConfidence(text string) float64 {
	n := float64(utf8.RuneCountInString(strings.TrimSpace(text)))
	return min(maxOCRConfidence, n/ocrDivisor)
}

// Inspect reports page count, info dictionary fields and whether any of the
// first pages carries a text layer.
func (e *Extractor) Inspect(data []byte) (*domain.PDFInfo, error) {
	doc, err := e.open(data)
	if err != nil {
		return nil, err
	}

	info := doc.Info()
	result := &domain.PDFInfo{
		PageCount:        doc.NumPage(),
		Title:            info["Title"],
		Author:           info["Author"],
		Subject:          info["Subject"],
		Creator:          info["Creator"],
		Producer:         info["Producer"],
		CreationDate:     info["CreationDate"],
		ModificationDate: info["ModDate"],
		Encrypted:        doc.Encrypted(),
		FileSize:         len(data),
	}

	for i := 1; i <= min(inspectPages, result.PageCount); i++ {
		if text, err := doc.PageText(i); err == nil && strings.TrimSpace(text) != "" {
			result.HasText = true
			break
		}
	}
	return result, nil
}
