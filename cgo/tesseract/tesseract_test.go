package tesseract

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Name(t *testing.T) {
	assert.Equal(t, "tesseract", New(0).Name())
}

func TestEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(0).Recognize(ctx, []byte{1}, "eng")
	assert.Error(t, err)
}

func TestEngine_RecognizeBlankImage(t *testing.T) {
	engine := New(150)
	if !engine.Available() {
		t.Skip("built without cgo")
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}

	img := image.NewGray(image.Rect(0, 0, 64, 32))
	for i := range img.Pix {
		img.Pix[i] = uint8(color.White.Y >> 8)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	text, err := engine.Recognize(context.Background(), buf.Bytes(), "eng")
	if err != nil && errors.Is(err, context.Canceled) {
		t.Fatal("unexpected cancellation")
	}
	if err == nil {
		assert.Empty(t, bytes.TrimSpace([]byte(text)))
	}
}
