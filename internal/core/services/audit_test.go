package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsift/internal/analyzers/heuristic"
	"github.com/custodia-labs/docsift/internal/core/domain"
)

// stubOCR implements driven.OCREngine and reports availability.
type stubOCR struct {
	available bool
}

func (o stubOCR) Name() string { return "stub" }

func (o stubOCR) Recognize(context.Context, []byte, string) (string, error) { return "", nil }

func (o stubOCR) Available() bool { return o.available }

func seedAudit(t *testing.T, sink *memory.AuditStore, n int, user string) {
	t.Helper()
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		_, err := sink.Write(context.Background(), domain.AuditEntry{
			RequestID:      fmt.Sprintf("%s-%d", user, i),
			UserID:         user,
			ProcessingTime: ptr(float64(i + 1)),
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestAuditService_Logs_Paging(t *testing.T) {
	sink := memory.NewAuditStore()
	seedAudit(t, sink, 5, "alice")
	seedAudit(t, sink, 2, "bob")
	service := NewAuditService(sink, heuristic.New(), nil)

	page, err := service.Logs(context.Background(), "alice", 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PerPage)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "alice-2", page.Records[0].RequestID)
	assert.Equal(t, "alice-1", page.Records[1].RequestID)
}

func TestAuditService_Logs_Defaults(t *testing.T) {
	sink := memory.NewAuditStore()
	service := NewAuditService(sink, heuristic.New(), nil)

	page, err := service.Logs(context.Background(), "", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultPerPage, page.PerPage)
	assert.NotNil(t, page.Records)
	assert.Empty(t, page.Records)

	page, err = service.Logs(context.Background(), "", 1, 5000)
	require.NoError(t, err)
	assert.Equal(t, maxPerPage, page.PerPage)
}

func TestAuditService_Logs_SinkErrors(t *testing.T) {
	service := NewAuditService(&failingSink{}, heuristic.New(), nil)

	_, err := service.Logs(context.Background(), "", 1, 10)
	assert.Error(t, err)

	_, err = NewAuditService(nil, heuristic.New(), nil).Logs(context.Background(), "", 1, 10)
	assert.ErrorIs(t, err, domain.ErrAuditUnavailable)
}

func TestAuditService_Stats(t *testing.T) {
	sink := memory.NewAuditStore()
	seedAudit(t, sink, 3, "alice")
	seedAudit(t, sink, 1, "bob")
	service := NewAuditService(sink, heuristic.New(), nil)

	stats, err := service.Stats(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalRequests)
	assert.InDelta(t, 6.0, stats.TotalProcessingTime, 1e-9)
	assert.InDelta(t, 2.0, stats.AvgProcessingTime, 1e-9)

	all, err := service.Stats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, all.TotalRequests)

	_, err = NewAuditService(&failingSink{}, heuristic.New(), nil).Stats(context.Background(), "")
	assert.Error(t, err)
}

func TestAuditService_Health(t *testing.T) {
	tests := []struct {
		name       string
		service    *AuditService
		wantStatus string
		wantAudit  string
		wantOCR    string
	}{
		{
			name:       "all up",
			service:    NewAuditService(memory.NewAuditStore(), heuristic.New(), stubOCR{available: true}),
			wantStatus: domain.HealthHealthy,
			wantAudit:  "up",
			wantOCR:    "up",
		},
		{
			name:       "ocr missing stays healthy",
			service:    NewAuditService(memory.NewAuditStore(), heuristic.New(), stubOCR{available: false}),
			wantStatus: domain.HealthHealthy,
			wantAudit:  "up",
			wantOCR:    "unavailable",
		},
		{
			name:       "audit down degrades",
			service:    NewAuditService(&failingSink{}, heuristic.New(), nil),
			wantStatus: domain.HealthDegraded,
			wantAudit:  "down",
			wantOCR:    "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := tt.service.Health(context.Background())

			assert.Equal(t, tt.wantStatus, report.Status)
			assert.Equal(t, tt.wantAudit, report.Components["audit"])
			assert.Equal(t, "up", report.Components["analyzer"])
			assert.Equal(t, tt.wantOCR, report.Components["ocr"])
		})
	}
}
