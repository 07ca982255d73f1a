package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

func TestAnalyzeCmd_Use(t *testing.T) {
	assert.Equal(t, "analyze [text]", analyzeCmd.Use)
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("analyze", "-f", "json", "--lang", "en", "The contract was signed. Payment is due in March.")
	require.NoError(t, err)

	var analysis domain.TextAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.Equal(t, 9, analysis.WordCount)
	assert.Equal(t, "en", analysis.Language)
	assert.NotEmpty(t, analysis.Summary)
}

func TestAnalyzeCmd_FromFileTable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempFile(t, "text.txt", "Excellent service, very happy with the result.")

	out, err := execute("analyze", "--format", "table", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Text Analysis")
	assert.Contains(t, out, "Words: 7")
	assert.Contains(t, out, "Sentiment:")
}

func TestAnalyzeCmd_RequiresText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("analyze")

	assert.Error(t, err)
}

func TestAnalyzeCmd_BlankText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("analyze", "-f", "json", "   ")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractInfoCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("extract-info", "-f", "json", "Contact maria@example.com or visit https://example.com")
	require.NoError(t, err)

	var info domain.ExtractedInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, []string{"maria@example.com"}, info.Emails)
	assert.Equal(t, []string{"https://example.com"}, info.URLs)
}

func TestExtractInfoCmd_TableEmpty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("extract-info", "-f", "table", "nothing to see here")
	require.NoError(t, err)
	assert.Contains(t, out, "No information found.")
}
