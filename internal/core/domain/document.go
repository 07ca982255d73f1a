package domain

import (
	"strings"
	"time"
)

// DocumentKind identifies how text is recovered from a document.
type DocumentKind string

// Supported document kinds.
const (
	KindPDF   DocumentKind = "pdf"
	KindImage DocumentKind = "image"
	KindText  DocumentKind = "text"
)

// MIMETypePDF is the declared content type that selects PDF extraction.
const MIMETypePDF = "application/pdf"

// KindFromMIME maps a declared content type to a document kind.
// PDF and image/* are recognised; everything else is treated as text.
func KindFromMIME(mimeType string) DocumentKind {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}

	switch {
	case mt == MIMETypePDF:
		return KindPDF
	case strings.HasPrefix(mt, "image/"):
		return KindImage
	default:
		return KindText
	}
}

// IsValid returns true if the kind is recognised.
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindPDF, KindImage, KindText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k DocumentKind) String() string {
	return string(k)
}

// DocumentInput is one uploaded document. It is not modified once accepted.
type DocumentInput struct {
	// Filename is the caller-supplied name, used only for reporting.
	Filename string `json:"filename"`

	// ContentType is the declared MIME type.
	ContentType string `json:"content_type"`

	// Kind is derived from ContentType when left empty.
	Kind DocumentKind `json:"kind"`

	// Content holds the raw bytes.
	Content []byte `json:"-"`
}

// ResolvedKind returns Kind, deriving it from ContentType when unset.
func (d DocumentInput) ResolvedKind() DocumentKind {
	if d.Kind.IsValid() {
		return d.Kind
	}
	return KindFromMIME(d.ContentType)
}

// ExtractionResult is the text recovered from a document.
// Text is never nil; it is "" when nothing could be recovered.
type ExtractionResult struct {
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
	Language   string        `json:"language"`
	PageCount  int           `json:"page_count,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`

	// Err carries the diagnostic when extraction failed outright.
	// A failed result always has empty Text and zero Confidence.
	Err error `json:"-"`
}

// Failed returns true if extraction failed outright.
func (r ExtractionResult) Failed() bool {
	return r.Err != nil
}

// ClampConfidence bounds a confidence value to [0, 1].
func ClampConfidence(c float64) float64 {
	switch {
	case c != c, c < 0: // NaN or negative
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
