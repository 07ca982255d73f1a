package driven

import "context"

// OCREngine recognises text in a raster image.
type OCREngine interface {
	// Name identifies the engine in logs and health reports.
	Name() string

	// Recognize returns the text found in an encoded image (PNG, JPEG, TIFF...).
	// language is an OCR language code such as "por".
	Recognize(ctx context.Context, image []byte, language string) (string, error)
}

// PageRasterizer renders a single PDF page to an encoded PNG image.
type PageRasterizer interface {
	// RasterizePage renders 1-based page of the PDF in data.
	RasterizePage(ctx context.Context, data []byte, page int) ([]byte, error)

	// Available reports whether the rasteriser can run on this system.
	Available() bool
}
