package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

func seedAuditRecords(t *testing.T) {
	t.Helper()
	elapsed := 1.5
	failure := "too many documents"
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []domain.AuditEntry{
		{RequestID: "r1", UserID: "alice", ProcessingTime: &elapsed, Timestamp: base},
		{RequestID: "r2", UserID: "bob", ProcessingTime: &elapsed, Timestamp: base.Add(time.Minute)},
		{RequestID: "r3", UserID: "alice", Error: &failure, Timestamp: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		_, err := testAuditStore.Write(context.Background(), e)
		require.NoError(t, err)
	}
}

func TestAuditCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range auditCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"logs", "stats"}, names)
}

func TestAuditLogsCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedAuditRecords(t)

	out, err := execute("audit", "logs", "-f", "json", "--user", "alice")
	require.NoError(t, err)

	var page domain.AuditPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Records, 2)
	assert.Equal(t, "r3", page.Records[0].RequestID)
	assert.Equal(t, domain.AuditStatusError, page.Records[0].Status)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.PerPage)
}

func TestAuditLogsCmd_Paging(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedAuditRecords(t)

	out, err := execute("audit", "logs", "-f", "json", "--page", "2", "--per-page", "2")
	require.NoError(t, err)

	var page domain.AuditPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Records, 1)
	assert.Equal(t, "r1", page.Records[0].RequestID)
}

func TestAuditLogsCmd_TableEmpty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("audit", "logs", "-f", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "No audit records found.")
}

func TestAuditLogsCmd_Table(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedAuditRecords(t)

	out, err := execute("audit", "logs", "-f", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "user=bob")
	assert.Contains(t, out, "error: too many documents")
}

func TestAuditStatsCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedAuditRecords(t)

	out, err := execute("audit", "stats", "-f", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage statistics (all users)")
	assert.Contains(t, out, "Requests: 3")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Success rate: 66.7%")

	out, err = execute("audit", "stats", "-f", "json", "-u", "bob")
	require.NoError(t, err)
	var stats domain.AuditStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.TotalRequests)
	assert.InDelta(t, 1.5, stats.AvgProcessingTime, 1e-9)
}

func TestAuditCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)
	resetFlags()

	_, err := execute("audit", "stats")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit service not configured")
}

func TestHealthCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("health")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: healthy")
	assert.Contains(t, out, "audit: up")
	assert.Contains(t, out, "ocr: unavailable")
}

func TestLanguagesCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("languages")
	require.NoError(t, err)
	assert.Contains(t, out, "pt")
	assert.Contains(t, out, "(OCR: eng)")
	assert.Contains(t, out, "Español")
}
