package driven

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// AuditSink persists the audit trail of processing runs.
type AuditSink interface {
	// Write stores one entry and returns the new record id.
	Write(ctx context.Context, entry domain.AuditEntry) (string, error)

	// List returns records newest first.
	List(ctx context.Context, query domain.AuditQuery) ([]domain.AuditRecord, error)

	// Stats aggregates records, optionally restricted to one user.
	Stats(ctx context.Context, userID string) (domain.AuditStats, error)

	// Healthy reports whether the sink is reachable.
	Healthy(ctx context.Context) bool
}
