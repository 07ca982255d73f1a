package lingua

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"portuguese", "O contrato de prestação de serviços foi assinado pelas duas partes ontem.", "pt"},
		{"english", "The employment contract was signed by both parties yesterday afternoon.", "en"},
		{"spanish", "El contrato de trabajo fue firmado por ambas partes ayer por la tarde.", "es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_TooShort(t *testing.T) {
	_, ok := New().Detect("olá")
	assert.False(t, ok)
}
