package driving

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// AuditService reads the audit trail and reports system health.
type AuditService interface {
	// Logs returns one page of records, newest first. page is 1-based.
	Logs(ctx context.Context, userID string, page, perPage int) (*domain.AuditPage, error)

	// Stats aggregates the audit trail, optionally for one user.
	Stats(ctx context.Context, userID string) (*domain.AuditStats, error)

	// Health reports component availability.
	Health(ctx context.Context) domain.HealthReport
}
