package domain

import (
	"context"
	"errors"
)

// ErrorKind classifies why a document or a run failed.
type ErrorKind string

// Error kinds carried by failed outcomes and run-level errors.
const (
	ErrorKindNone           ErrorKind = ""
	ErrorKindExtraction     ErrorKind = "extraction"
	ErrorKindAnalysis       ErrorKind = "analysis"
	ErrorKindTimeout        ErrorKind = "timeout"
	ErrorKindCanceled       ErrorKind = "canceled"
	ErrorKindInvalidInput   ErrorKind = "invalid_input"
	ErrorKindNotImplemented ErrorKind = "not_implemented"
	ErrorKindInternal       ErrorKind = "internal"
)

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

// ProcessingError is a failure tagged with its kind.
// Message is safe to show to callers; Err keeps the underlying cause.
type ProcessingError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewProcessingError creates a tagged error wrapping err.
func NewProcessingError(kind ErrorKind, message string, err error) *ProcessingError {
	return &ProcessingError{Kind: kind, Message: message, Err: err}
}

// Error implements error.
func (e *ProcessingError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// KindOf classifies err. A ProcessingError keeps its own kind; otherwise
// context and domain sentinels are mapped, and anything else is internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}

	var pe *ProcessingError
	if errors.As(err, &pe) && pe.Kind != ErrorKindNone {
		return pe.Kind
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTimeout
	case errors.Is(err, context.Canceled):
		return ErrorKindCanceled
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrTooManyDocuments),
		errors.Is(err, ErrDocumentTooLarge):
		return ErrorKindInvalidInput
	case errors.Is(err, ErrNotImplemented):
		return ErrorKindNotImplemented
	case errors.Is(err, ErrUnreadableDocument),
		errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrOCRUnavailable),
		errors.Is(err, ErrRasterToolNotFound):
		return ErrorKindExtraction
	default:
		return ErrorKindInternal
	}
}
