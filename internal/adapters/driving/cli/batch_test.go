package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

func TestBatchCmd_Use(t *testing.T) {
	assert.Equal(t, "batch [files...]", batchCmd.Use)
}

func TestBatchCmd_Flags(t *testing.T) {
	for _, name := range []string{"query", "lang", "user", "request-id", "format"} {
		assert.NotNil(t, batchCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, defaultCLIUser, batchCmd.Flags().Lookup("user").DefValue)
}

func TestBatchCmd_RequiresFiles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("batch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestBatchCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)
	resetFlags()
	path := writeTempFile(t, "a.txt", "hello")

	_, err := execute("batch", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch service not configured")
}

func TestBatchCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("batch", "/does/not/exist.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestBatchCmd_JSONWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	relevant := writeTempFile(t, "contract.txt",
		"The employment contract was signed. The contract term is two years.")
	other := writeTempFile(t, "recipe.txt", "Mix flour and sugar. Bake the cake for an hour.")

	out, err := execute("batch", "--format", "json", "--query", "employment contract",
		"--request-id", "req-42", other, relevant)
	require.NoError(t, err)

	var run domain.BatchRun
	require.NoError(t, json.Unmarshal([]byte(out), &run))
	assert.Equal(t, "req-42", run.RequestID)
	assert.Equal(t, defaultCLIUser, run.UserID)
	require.NotNil(t, run.Query)
	assert.Equal(t, "employment contract", *run.Query)
	assert.Equal(t, 2, run.TotalDocuments)
	assert.Equal(t, 2, run.SuccessfulDocuments)
	require.Len(t, run.Results, 2)
	assert.Equal(t, "contract.txt", run.Results[0].Filename)
	assert.GreaterOrEqual(t, run.Results[0].Score(), run.Results[1].Score())
}

func TestBatchCmd_YAMLWithoutQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	first := writeTempFile(t, "first.txt", "First document text.")
	second := writeTempFile(t, "second.txt", "Second document text.")

	out, err := execute("batch", "-f", "yaml", first, second)
	require.NoError(t, err)

	var run map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &run))
	assert.Nil(t, run["query"])
	results, ok := run["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)
	assert.Equal(t, "first.txt", results[0].(map[string]any)["filename"])
	assert.Nil(t, results[0].(map[string]any)["similarity_score"])
}

func TestBatchCmd_Table(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempFile(t, "notes.txt", "Quarterly report on the invoice backlog.")

	out, err := execute("batch", "--format", "table", "--query", "invoice", "--user", "alice", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Processing 1 files")
	assert.Contains(t, out, "(ranking)")
	assert.Contains(t, out, "Query: invoice")
	assert.Contains(t, out, "1 total, 1 succeeded, 0 failed")
	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "Summary:")
}

func TestBatchCmd_UnknownFormat(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempFile(t, "a.txt", "text")

	_, err := execute("batch", "--format", "xml", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestReadDocument_ContentType(t *testing.T) {
	doc, err := readDocument(writeTempFile(t, "scan.png", "not really a png"))
	require.NoError(t, err)
	assert.Equal(t, "image/png", doc.ContentType)
	assert.Equal(t, "scan.png", doc.Filename)

	doc, err = readDocument(writeTempFile(t, "noext", "%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, domain.MIMETypePDF, doc.ContentType)
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("  a\n b\t\tc  "))
}
