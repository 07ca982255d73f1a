package mcp

import (
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Batch runs document batches.
	Batch driving.BatchService

	// Analysis analyses single texts.
	Analysis driving.AnalysisService

	// Audit reads the audit trail.
	Audit driving.AuditService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Batch == nil {
		return ErrMissingBatchService
	}
	// Analysis and Audit are optional; their tools are not registered without them.
	return nil
}
