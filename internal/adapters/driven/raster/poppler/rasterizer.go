// Package poppler renders PDF pages to PNG with poppler's pdftoppm.
package poppler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure Rasterizer implements the interface.
var _ driven.PageRasterizer = (*Rasterizer)(nil)

// DefaultTool is the rasteriser binary looked up on PATH.
const DefaultTool = "pdftoppm"

// CommandRunner executes an external command and returns its combined output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Rasterizer renders single PDF pages to PNG.
type Rasterizer struct {
	runner   CommandRunner
	tool     string
	dpi      int
	lookPath func(string) (string, error)
}

// New creates a rasteriser using the given binary and resolution.
func New(tool string, dpi int) *Rasterizer {
	return NewWithRunner(execRunner{}, tool, dpi)
}

// NewWithRunner creates a rasteriser with a custom command runner.
func NewWithRunner(runner CommandRunner, tool string, dpi int) *Rasterizer {
	if tool == "" {
		tool = DefaultTool
	}
	if dpi <= 0 {
		dpi = 150
	}
	return &Rasterizer{runner: runner, tool: tool, dpi: dpi, lookPath: exec.LookPath}
}

// Available reports whether the rasteriser binary is on PATH.
func (r *Rasterizer) Available() bool {
	_, err := r.lookPath(r.tool)
	return err == nil
}

// CheckAvailable returns ErrRasterToolNotFound when the binary is missing.
func (r *Rasterizer) CheckAvailable() error {
	if !r.Available() {
		return fmt.Errorf("%w: %s", domain.ErrRasterToolNotFound, r.tool)
	}
	return nil
}

// InstallInstructions returns how to install poppler.
func InstallInstructions() string {
	return "Install poppler-utils: brew install poppler (macOS) or apt install poppler-utils (Linux)"
}

// RasterizePage renders 1-based page of data as PNG at the configured DPI.
func (r *Rasterizer) RasterizePage(ctx context.Context, data []byte, page int) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", domain.ErrInvalidInput, page)
	}
	if err := r.CheckAvailable(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "docsift-raster-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(input, data, 0600); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	root := filepath.Join(dir, "page")
	n := strconv.Itoa(page)
	out, err := r.runner.Run(ctx, r.tool,
		"-f", n, "-l", n,
		"-r", strconv.Itoa(r.dpi),
		"-png", "-singlefile",
		input, root,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s page %d: %w: %s", r.tool, page, err, out)
	}

	img, err := os.ReadFile(root + ".png")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s page %d: no image produced", r.tool, page)
		}
		return nil, fmt.Errorf("reading page image: %w", err)
	}
	return img, nil
}
