package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// fakeDocument is a test double for document.
type fakeDocument struct {
	pages     []string
	pageErrs  map[int]error
	info      map[string]string
	encrypted bool
}

func (f *fakeDocument) NumPage() int { return len(f.pages) }

func (f *fakeDocument) PageText(page int) (string, error) {
	if err := f.pageErrs[page]; err != nil {
		return "", err
	}
	return f.pages[page-1], nil
}

func (f *fakeDocument) Info() map[string]string { return f.info }

func (f *fakeDocument) Encrypted() bool { return f.encrypted }

// mockRasterizer is a test double for driven.PageRasterizer.
type mockRasterizer struct {
	err   error
	pages []int
}

func (m *mockRasterizer) RasterizePage(_ context.Context, _ []byte, page int) ([]byte, error) {
	m.pages = append(m.pages, page)
	if m.err != nil {
		return nil, m.err
	}
	return []byte(fmt.Sprintf("png-%d", page)), nil
}

func (m *mockRasterizer) Available() bool { return true }

// mockOCR is a test double for driven.OCREngine keyed by image bytes.
type mockOCR struct {
	texts map[string]string
	err   error
}

func (m *mockOCR) Name() string { return "mock" }

func (m *mockOCR) Recognize(_ context.Context, image []byte, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.texts[string(image)], nil
}

func newWithDocument(doc *fakeDocument, r *mockRasterizer, o *mockOCR) *Extractor {
	e := New(r, o)
	e.open = func([]byte) (document, error) { return doc, nil }
	return e
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []domain.DocumentKind{domain.KindPDF}, New(nil, nil).Kinds())
}

func TestExtract_TextLayerPages(t *testing.T) {
	doc := &fakeDocument{pages: []string{"Page one text.", "Page two text."}}
	e := newWithDocument(doc, &mockRasterizer{}, &mockOCR{})

	result := e.Extract(context.Background(), []byte("%PDF"), "por")

	require.NoError(t, result.Err)
	assert.Equal(t, "Page one text.\n\nPage two text.", result.Text)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.Equal(t, 2, result.PageCount)
}

func TestExtract_ScannedPageUsesOCR(t *testing.T) {
	doc := &fakeDocument{pages: []string{"Digital page.", "   "}}
	raster := &mockRasterizer{}
	ocr := &mockOCR{texts: map[string]string{"png-2": strings.Repeat("x", 400)}}
	e := newWithDocument(doc, raster, ocr)

	result := e.Extract(context.Background(), []byte("%PDF"), "eng")

	require.NoError(t, result.Err)
	assert.Equal(t, []int{2}, raster.pages)
	assert.True(t, strings.HasPrefix(result.Text, "Digital page.\n\n"))
	// mean of 0.95 and min(0.8, 400/1000)
	assert.InDelta(t, (0.95+0.4)/2, result.Confidence, 1e-9)
}

func TestExtract_PageFailuresDegradeOnlyThatPage(t *testing.T) {
	doc := &fakeDocument{
		pages:    []string{"First.", "", "Third."},
		pageErrs: map[int]error{2: errors.New("bad content stream")},
	}
	raster := &mockRasterizer{err: errors.New("pdftoppm failed")}
	e := newWithDocument(doc, raster, &mockOCR{})

	result := e.Extract(context.Background(), []byte("%PDF"), "por")

	require.NoError(t, result.Err)
	assert.Equal(t, "First.\n\n\n\nThird.", result.Text)
	assert.InDelta(t, (0.95+0+0.95)/3, result.Confidence, 1e-9)
}

func TestExtract_OCRFailureEmptiesPage(t *testing.T) {
	doc := &fakeDocument{pages: []string{""}}
	e := newWithDocument(doc, &mockRasterizer{}, &mockOCR{err: errors.New("no language data")})

	result := e.Extract(context.Background(), []byte("%PDF"), "por")

	require.NoError(t, result.Err)
	assert.Equal(t, "", result.Text)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestExtract_NoOCRConfigured(t *testing.T) {
	doc := &fakeDocument{pages: []string{""}}
	e := New(nil, nil)
	e.open = func([]byte) (document, error) { return doc, nil }

	result := e.Extract(context.Background(), []byte("%PDF"), "por")

	require.NoError(t, result.Err)
	assert.Equal(t, "", result.Text)
}

func TestExtract_ZeroPages(t *testing.T) {
	e := newWithDocument(&fakeDocument{}, &mockRasterizer{}, &mockOCR{})

	result := e.Extract(context.Background(), []byte("%PDF"), "por")

	require.NoError(t, result.Err)
	assert.Equal(t, "", result.Text)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newWithDocument(&fakeDocument{pages: []string{"a"}}, nil, nil)

	result := e.Extract(ctx, []byte("%PDF"), "por")

	assert.ErrorIs(t, result.Err, context.Canceled)
}

func TestExtract_NotAPDF(t *testing.T) {
	result := New(nil, nil).Extract(context.Background(), []byte("plain words"), "por")

	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, domain.ErrUnreadableDocument)
	assert.Equal(t, "", result.Text)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestExtract_RealPDF(t *testing.T) {
	data := buildPDF("Hello PDF")

	result := New(nil, nil).Extract(context.Background(), data, "eng")

	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.PageCount)
	assert.Contains(t, result.Text, "Hello PDF")
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
}

func TestInspect(t *testing.T) {
	doc := &fakeDocument{
		pages: []string{"", "", "text on three", "four"},
		info:  map[string]string{"Title": "Report", "Author": "Ana", "ModDate": "D:20240101"},
	}
	e := newWithDocument(doc, nil, nil)

	info, err := e.Inspect([]byte("12345"))

	require.NoError(t, err)
	assert.Equal(t, 4, info.PageCount)
	assert.Equal(t, "Report", info.Title)
	assert.Equal(t, "Ana", info.Author)
	assert.Equal(t, "D:20240101", info.ModificationDate)
	assert.True(t, info.HasText)
	assert.False(t, info.Encrypted)
	assert.Equal(t, 5, info.FileSize)
}

func TestInspect_OnlyFirstPagesChecked(t *testing.T) {
	doc := &fakeDocument{pages: []string{"", "", "", "late text"}}
	e := newWithDocument(doc, nil, nil)

	info, err := e.Inspect([]byte("x"))

	require.NoError(t, err)
	assert.False(t, info.HasText)
}

func TestInspect_Unreadable(t *testing.T) {
	_, err := New(nil, nil).Inspect([]byte("nope"))
	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}

func TestOCRConfidence(t *testing.T) {
	assert.Equal(t, 0.0, OCRConfidence("  "))
	assert.InDelta(t, 0.5, OCRConfidence(strings.Repeat("a", 500)), 1e-9)
	assert.InDelta(t, 0.8, OCRConfidence(strings.Repeat("a", 5000)), 1e-9)
}

// buildPDF writes a minimal single-page PDF showing text in Helvetica,
// with a correct cross-reference table.
func buildPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
