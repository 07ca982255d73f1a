// Package mcp provides an MCP (Model Context Protocol) server adapter for docsift.
// It lets AI assistants run document batches, analyse text and read the audit trail.
package mcp

import "errors"

// ErrMissingBatchService is returned when the batch service is not provided.
var ErrMissingBatchService = errors.New("mcp: batch service is required")

// ErrInvalidContent is returned when a document's content cannot be decoded.
var ErrInvalidContent = errors.New("mcp: document content must be text or base64")
