//go:build !cgo

package tesseract

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine recognises text with Tesseract.
// This is a stub for builds without CGO.
type Engine struct {
	dpi int
}

// New creates a Tesseract engine.
func New(dpi int) *Engine {
	return &Engine{dpi: dpi}
}

// Name identifies the engine.
func (e *Engine) Name() string { return "tesseract" }

// Available reports whether OCR can run in this build.
func (e *Engine) Available() bool { return false }

// Recognize always fails without CGO.
func (e *Engine) Recognize(_ context.Context, _ []byte, _ string) (string, error) {
	return "", domain.ErrOCRUnavailable
}
