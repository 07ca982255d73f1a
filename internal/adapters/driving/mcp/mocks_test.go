package mcp

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// mockBatchService is a mock implementation of driving.BatchService.
type mockBatchService struct {
	run *domain.BatchRun
	err error

	lastRequest domain.BatchRequest
}

func (m *mockBatchService) Process(_ context.Context, req domain.BatchRequest) (*domain.BatchRun, error) {
	m.lastRequest = req
	return m.run, m.err
}

func (m *mockBatchService) ProcessSingle(
	_ context.Context,
	_ domain.DocumentInput,
	_ string,
) (*domain.BatchRun, error) {
	return m.run, m.err
}

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	analysis *domain.TextAnalysis
	info     *domain.ExtractedInfo
	err      error

	lastUser string
}

func (m *mockAnalysisService) AnalyzeText(
	_ context.Context,
	userID, _, _ string,
) (*domain.TextAnalysis, error) {
	m.lastUser = userID
	return m.analysis, m.err
}

func (m *mockAnalysisService) ExtractInfo(_ context.Context, _ string) (*domain.ExtractedInfo, error) {
	return m.info, m.err
}

func (m *mockAnalysisService) InspectPDF(_ context.Context, _ []byte) (*domain.PDFInfo, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockAnalysisService) DocumentInfo(_ context.Context, _ string) (*domain.PDFInfo, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockAnalysisService) SupportedLanguages() []domain.SupportedLanguage {
	return domain.SupportedLanguages()
}

// mockAuditService is a mock implementation of driving.AuditService.
type mockAuditService struct {
	page   *domain.AuditPage
	stats  *domain.AuditStats
	health domain.HealthReport
	err    error

	lastUser string
}

func (m *mockAuditService) Logs(_ context.Context, userID string, _, _ int) (*domain.AuditPage, error) {
	m.lastUser = userID
	return m.page, m.err
}

func (m *mockAuditService) Stats(_ context.Context, userID string) (*domain.AuditStats, error) {
	m.lastUser = userID
	return m.stats, m.err
}

func (m *mockAuditService) Health(_ context.Context) domain.HealthReport {
	return m.health
}
