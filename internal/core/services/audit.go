package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// Ensure AuditService implements the interface.
var _ driving.AuditService = (*AuditService)(nil)

// Paging defaults for audit log listings.
const (
	defaultPerPage = 50
	maxPerPage     = 1000
)

// Component states reported by Health.
const (
	componentUp          = "up"
	componentDown        = "down"
	componentUnavailable = "unavailable"
)

// availability is implemented by collaborators that can report whether
// they are usable on this system.
type availability interface {
	Available() bool
}

// AuditService reads the audit trail and reports component health.
type AuditService struct {
	sink     driven.AuditSink
	analyzer driven.TextAnalyzer
	ocr      driven.OCREngine
}

// NewAuditService creates a new audit service. ocr may be nil.
func NewAuditService(sink driven.AuditSink, analyzer driven.TextAnalyzer, ocr driven.OCREngine) *AuditService {
	return &AuditService{
		sink:     sink,
		analyzer: analyzer,
		ocr:      ocr,
	}
}

// Logs returns one page of records, newest first.
func (s *AuditService) Logs(ctx context.Context, userID string, page, perPage int) (*domain.AuditPage, error) {
	if s.sink == nil {
		return nil, domain.ErrAuditUnavailable
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	perPage = min(perPage, maxPerPage)

	records, err := s.sink.List(ctx, domain.AuditQuery{
		UserID: userID,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}

	return &domain.AuditPage{
		Records: records,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Stats aggregates the audit trail, optionally for one user.
func (s *AuditService) Stats(ctx context.Context, userID string) (*domain.AuditStats, error) {
	if s.sink == nil {
		return nil, domain.ErrAuditUnavailable
	}
	stats, err := s.sink.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("audit stats: %w", err)
	}
	return &stats, nil
}

// Health reports component availability. The service is degraded when
// the audit sink is unreachable; a missing OCR engine only limits
// image and scanned PDF support.
func (s *AuditService) Health(ctx context.Context) domain.HealthReport {
	report := domain.HealthReport{
		Status:     domain.HealthHealthy,
		Components: make(map[string]string, 3),
	}

	if s.sink != nil && s.sink.Healthy(ctx) {
		report.Components["audit"] = componentUp
	} else {
		report.Components["audit"] = componentDown
		report.Status = domain.HealthDegraded
	}

	if s.analyzer != nil {
		report.Components["analyzer"] = componentUp
	} else {
		report.Components["analyzer"] = componentDown
		report.Status = domain.HealthDegraded
	}

	report.Components["ocr"] = ocrStatus(s.ocr)
	return report
}

func ocrStatus(ocr driven.OCREngine) string {
	if ocr == nil {
		return componentUnavailable
	}
	if probe, ok := ocr.(availability); ok && !probe.Available() {
		return componentUnavailable
	}
	return componentUp
}
