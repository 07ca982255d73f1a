package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// document is the subset of a parsed PDF the extractor reads.
type document interface {
	NumPage() int
	PageText(page int) (string, error)
	Info() map[string]string
	Encrypted() bool
}

// opener parses PDF bytes.
type opener func(data []byte) (document, error)

// infoKeys maps PDF info dictionary keys to PDFInfo fields.
var infoKeys = []string{"Title", "Author", "Subject", "Creator", "Producer", "CreationDate", "ModDate"}

// ledongthucDocument adapts github.com/ledongthuc/pdf.
type ledongthucDocument struct {
	reader *pdf.Reader
}

// openPDF parses data with github.com/ledongthuc/pdf. The library panics on
// some malformed inputs, so parsing is guarded.
func openPDF(data []byte) (doc document, err error) {
	defer func() {
		if p := recover(); p != nil {
			doc, err = nil, fmt.Errorf("%w: pdf parser panic: %v", domain.ErrUnreadableDocument, p)
		}
	}()

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty pdf", domain.ErrUnreadableDocument)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: encrypted pdf: %w", domain.ErrUnreadableDocument, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnreadableDocument, err)
	}
	return &ledongthucDocument{reader: r}, nil
}

func (d *ledongthucDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d *ledongthucDocument) PageText(page int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("page %d: text layer panic: %v", page, p)
		}
	}()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (d *ledongthucDocument) Info() map[string]string {
	info := make(map[string]string)
	dict := d.reader.Trailer().Key("Info")
	if dict.IsNull() {
		return info
	}
	for _, key := range infoKeys {
		if v := dict.Key(key); !v.IsNull() {
			if s := v.Text(); s != "" {
				info[key] = s
			}
		}
	}
	return info
}

func (d *ledongthucDocument) Encrypted() bool {
	return !d.reader.Trailer().Key("Encrypt").IsNull()
}
