package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates a document kind no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// Extraction Errors.

	// ErrOCRUnavailable indicates no OCR engine is compiled in or configured.
	// Image documents and scanned PDF pages yield no text without it.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")

	// ErrRasterToolNotFound indicates the PDF page rasteriser binary is missing.
	ErrRasterToolNotFound = errors.New("PDF rasteriser not found")

	// ErrUnreadableDocument indicates the bytes cannot be decoded as the declared kind.
	ErrUnreadableDocument = errors.New("unreadable document")

	// Limits.

	// ErrTooManyDocuments indicates a batch exceeds the configured document limit.
	ErrTooManyDocuments = errors.New("too many documents")

	// ErrDocumentTooLarge indicates a document exceeds the configured size limit.
	ErrDocumentTooLarge = errors.New("document too large")

	// Audit Errors.

	// ErrAuditUnavailable indicates the audit sink cannot be reached.
	ErrAuditUnavailable = errors.New("audit sink unavailable")
)
