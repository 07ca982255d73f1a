// Package image recovers text from raster images with OCR.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"strings"
	"time"
	"unicode/utf8"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Confidence is len(text)/confidenceDivisor capped at maxConfidence.
const (
	maxConfidence     = 0.9
	confidenceDivisor = 500.0
)

// Extractor runs OCR over a whole image.
type Extractor struct {
	ocr driven.OCREngine
}

// New creates an image extractor. A nil engine fails every image.
func New(ocr driven.OCREngine) *Extractor {
	return &Extractor{ocr: ocr}
}

// Kinds returns the document kinds this extractor handles.
func (e *Extractor) Kinds() []domain.DocumentKind {
	return []domain.DocumentKind{domain.KindImage}
}

// Extract validates that data is a decodable image and recognises its text.
func (e *Extractor) Extract(ctx context.Context, data []byte, language string) domain.ExtractionResult {
	start := time.Now()
	fail := func(err error) domain.ExtractionResult {
		logger.Debug("image extraction failed: %v", err)
		return domain.ExtractionResult{Language: language, Elapsed: time.Since(start), Err: err}
	}

	format, err := Validate(data)
	if err != nil {
		return fail(err)
	}
	logger.Debug("image format %s, %d bytes", format, len(data))

	if e.ocr == nil {
		return fail(domain.ErrOCRUnavailable)
	}

	text, err := e.ocr.Recognize(ctx, data, language)
	if err != nil {
		return fail(domain.NewProcessingError(domain.ErrorKindExtraction, "ocr", err))
	}

	return domain.ExtractionResult{
		Text:       text,
		Confidence: Confidence(text),
		Language:   language,
		Elapsed:    time.Since(start),
	}
}

// Validate checks that data decodes as a supported image and returns its format.
func Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrUnreadableDocument)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnreadableDocument, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return "", fmt.Errorf("%w: zero-sized image", domain.ErrUnreadableDocument)
	}
	return format, nil
}

// Confidence scores OCR output of a whole image by its trimmed length.
func Confidence(text string) float64 {
	n := float64(utf8.RuneCountInString(strings.TrimSpace(text)))
	return min(maxConfidence, n/confidenceDivisor)
}
