package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// mockOCR is a test double for driven.OCREngine.
type mockOCR struct {
	text     string
	err      error
	language string
	calls    int
}

func (m *mockOCR) Name() string { return "mock" }

func (m *mockOCR) Recognize(_ context.Context, _ []byte, language string) (string, error) {
	m.calls++
	m.language = language
	return m.text, m.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []domain.DocumentKind{domain.KindImage}, New(nil).Kinds())
}

func TestExtract_RecognisesText(t *testing.T) {
	ocr := &mockOCR{text: "  Nota fiscal 123  "}
	e := New(ocr)

	result := e.Extract(context.Background(), pngBytes(t), "por")

	require.NoError(t, result.Err)
	assert.Equal(t, "  Nota fiscal 123  ", result.Text)
	assert.InDelta(t, 15.0/500.0, result.Confidence, 1e-9)
	assert.Equal(t, "por", ocr.language)
	assert.Equal(t, 1, ocr.calls)
}

func TestExtract_UnreadableBytes(t *testing.T) {
	ocr := &mockOCR{text: "never"}
	e := New(ocr)

	result := e.Extract(context.Background(), []byte("definitely not an image"), "eng")

	require.Error(t, result.Err)
	assert.True(t, errors.Is(result.Err, domain.ErrUnreadableDocument))
	assert.Equal(t, "", result.Text)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, 0, ocr.calls)
}

func TestExtract_EmptyBytes(t *testing.T) {
	result := New(&mockOCR{}).Extract(context.Background(), nil, "eng")
	assert.True(t, errors.Is(result.Err, domain.ErrUnreadableDocument))
}

func TestExtract_NoEngine(t *testing.T) {
	result := New(nil).Extract(context.Background(), pngBytes(t), "eng")
	assert.True(t, errors.Is(result.Err, domain.ErrOCRUnavailable))
	assert.Equal(t, "", result.Text)
}

func TestExtract_OCRError(t *testing.T) {
	result := New(&mockOCR{err: errors.New("tesseract crashed")}).Extract(context.Background(), pngBytes(t), "eng")

	require.Error(t, result.Err)
	assert.Equal(t, domain.ErrorKindExtraction, domain.KindOf(result.Err))
	assert.Equal(t, 0.0, result.Confidence)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n", 0},
		{"short", strings.Repeat("a", 50), 0.1},
		{"capped", strings.Repeat("a", 1000), 0.9},
		{"runes not bytes", strings.Repeat("ç", 250), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Confidence(tt.text), 1e-9)
		})
	}
}

func TestValidate(t *testing.T) {
	format, err := Validate(pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = Validate([]byte{0x89, 'P', 'N', 'G'})
	assert.Error(t, err)
}
