//go:build cgo

package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine recognises text with Tesseract.
// A fresh client is created per call, so an Engine is safe for concurrent use.
type Engine struct {
	clientFactory func() *gosseract.Client
	dpi           int
}

// New creates a Tesseract engine. dpi is passed to Tesseract as the source
// resolution hint; zero leaves Tesseract's own estimate.
func New(dpi int) *Engine {
	return &Engine{clientFactory: gosseract.NewClient, dpi: dpi}
}

// Name identifies the engine.
func (e *Engine) Name() string { return "tesseract" }

// Available reports whether OCR can run in this build.
func (e *Engine) Available() bool { return true }

// Recognize returns the text Tesseract finds in an encoded image.
func (e *Engine) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if language != "" {
		if err := c.SetLanguage(language); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if e.dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(e.dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimRight(text, "\n"), nil
}
