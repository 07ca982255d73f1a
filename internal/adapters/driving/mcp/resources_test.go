package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

func TestExtractUserID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid audit logs URI",
			uri:      "docsift://audit/alice/logs",
			expected: "alice",
		},
		{
			name:     "invalid prefix",
			uri:      "file://audit/alice/logs",
			expected: "",
		},
		{
			name:     "missing logs suffix",
			uri:      "docsift://audit/alice",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractUserID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleLanguagesResource(t *testing.T) {
	server, err := NewServer(&Ports{Batch: &mockBatchService{}})
	require.NoError(t, err)

	result, err := server.handleLanguagesResource(context.Background(), readRequest("docsift://languages"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var langs []domain.SupportedLanguage
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &langs))
	assert.Len(t, langs, 3)
}

func TestServer_handleHealthResource(t *testing.T) {
	audit := &mockAuditService{
		health: domain.HealthReport{Status: domain.HealthHealthy, Components: map[string]string{"audit": "up"}},
	}
	server, err := NewServer(&Ports{Batch: &mockBatchService{}, Audit: audit})
	require.NoError(t, err)

	result, err := server.handleHealthResource(context.Background(), readRequest("docsift://health"))
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, "healthy")
}

func TestServer_handleAuditLogsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns user records", func(t *testing.T) {
		audit := &mockAuditService{
			page: &domain.AuditPage{
				Records: []domain.AuditRecord{{ID: "r1", Status: domain.AuditStatusSuccess}},
				Page:    1,
				PerPage: auditLogsPageSize,
			},
		}
		server, err := NewServer(&Ports{Batch: &mockBatchService{}, Audit: audit})
		require.NoError(t, err)

		result, err := server.handleAuditLogsResource(ctx, readRequest("docsift://audit/alice/logs"))
		require.NoError(t, err)
		assert.Equal(t, "alice", audit.lastUser)
		assert.Contains(t, result.Contents[0].Text, "r1")
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Batch: &mockBatchService{}, Audit: &mockAuditService{}})
		require.NoError(t, err)

		_, err = server.handleAuditLogsResource(ctx, readRequest("docsift://audit/alice"))
		assert.Error(t, err)
	})

	t.Run("wraps service errors", func(t *testing.T) {
		audit := &mockAuditService{err: errors.New("db down")}
		server, err := NewServer(&Ports{Batch: &mockBatchService{}, Audit: audit})
		require.NoError(t, err)

		_, err = server.handleAuditLogsResource(ctx, readRequest("docsift://audit/alice/logs"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing audit logs")
	})
}
