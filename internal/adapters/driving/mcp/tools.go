package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// mcpUserID is recorded in the audit trail when a tool call names no user.
const mcpUserID = "mcp"

// DocumentArg is one document passed to the process_batch tool.
// Exactly one of Text and ContentBase64 should be set.
type DocumentArg struct {
	Filename      string `json:"filename" jsonschema:"name of the document, used only for reporting"`
	ContentType   string `json:"content_type,omitempty" jsonschema:"MIME type such as application/pdf or image/png (default text/plain)"`
	Text          string `json:"text,omitempty" jsonschema:"plain text content"`
	ContentBase64 string `json:"content_base64,omitempty" jsonschema:"base64 encoded binary content"`
}

// ProcessBatchInput is the input schema for the process_batch tool.
type ProcessBatchInput struct {
	Documents []DocumentArg `json:"documents" jsonschema:"documents to process"`
	Query     string        `json:"query,omitempty" jsonschema:"rank the documents by similarity to this query"`
	Language  string        `json:"language,omitempty" jsonschema:"document language: pt, en or es"`
	UserID    string        `json:"user_id,omitempty" jsonschema:"user id recorded in the audit trail"`
}

// ProcessBatchOutput is the output schema for the process_batch tool.
type ProcessBatchOutput struct {
	RequestID           string          `json:"request_id"`
	Mode                string          `json:"mode"`
	TotalDocuments      int             `json:"total_documents"`
	SuccessfulDocuments int             `json:"successful_documents"`
	FailedDocuments     int             `json:"failed_documents"`
	Results             []OutcomeOutput `json:"results"`
}

// OutcomeOutput is one document result. Extracted text is left out to keep
// responses small.
type OutcomeOutput struct {
	Filename      string   `json:"filename"`
	Status        string   `json:"status"`
	Summary       string   `json:"summary,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	Justification string   `json:"justification,omitempty"`
	Excerpts      []string `json:"excerpts,omitempty"`
	ErrorKind     string   `json:"error_kind,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// AnalyzeTextInput is the input schema for the analyze_text tool.
type AnalyzeTextInput struct {
	Text     string `json:"text" jsonschema:"the text to analyse"`
	Language string `json:"language,omitempty" jsonschema:"text language: pt, en or es"`
	UserID   string `json:"user_id,omitempty" jsonschema:"user id recorded in the audit trail"`
}

// ExtractInfoInput is the input schema for the extract_info tool.
type ExtractInfoInput struct {
	Text string `json:"text" jsonschema:"the text to scan for emails, phones, URLs, dates, tax ids and money values"`
}

// AuditStatsInput is the input schema for the audit_stats tool.
type AuditStatsInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"limit statistics to one user"`
}

// AuditStatsOutput is the output schema for the audit_stats tool.
type AuditStatsOutput struct {
	TotalRequests       int     `json:"total_requests"`
	SuccessfulRequests  int     `json:"successful_requests"`
	FailedRequests      int     `json:"failed_requests"`
	SuccessRate         float64 `json:"success_rate"`
	AvgProcessingTime   float64 `json:"avg_processing_time"`
	TotalProcessingTime float64 `json:"total_processing_time"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_batch",
		Description: "Extract text from documents, summarise them and optionally rank them against a query",
	}, s.handleProcessBatch)

	if s.ports.Analysis != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "analyze_text",
			Description: "Summarise a text and report its keywords, sentiment and categories",
		}, s.handleAnalyzeText)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "extract_info",
			Description: "Pull emails, phone numbers, URLs, dates, tax ids and money values out of a text",
		}, s.handleExtractInfo)
	}

	if s.ports.Audit != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "audit_stats",
			Description: "Aggregate statistics of processed requests",
		}, s.handleAuditStats)
	}
}

// handleProcessBatch handles the process_batch tool invocation.
func (s *Server) handleProcessBatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessBatchInput,
) (*mcp.CallToolResult, ProcessBatchOutput, error) {
	docs := make([]domain.DocumentInput, len(input.Documents))
	for i, arg := range input.Documents {
		doc, err := decodeDocument(arg)
		if err != nil {
			return nil, ProcessBatchOutput{}, fmt.Errorf("document %d: %w", i+1, err)
		}
		docs[i] = doc
	}

	userID := input.UserID
	if userID == "" {
		userID = mcpUserID
	}

	run, err := s.ports.Batch.Process(ctx, domain.BatchRequest{
		RequestID: uuid.New().String(),
		UserID:    userID,
		Query:     input.Query,
		Language:  input.Language,
		Documents: docs,
	})
	if err != nil {
		return nil, ProcessBatchOutput{}, err
	}

	output := ProcessBatchOutput{
		RequestID:           run.RequestID,
		Mode:                run.Mode(),
		TotalDocuments:      run.TotalDocuments,
		SuccessfulDocuments: run.SuccessfulDocuments,
		FailedDocuments:     run.FailedDocuments,
		Results:             make([]OutcomeOutput, len(run.Results)),
	}
	for i := range run.Results {
		output.Results[i] = toOutcomeOutput(&run.Results[i])
	}

	return nil, output, nil
}

// handleAnalyzeText handles the analyze_text tool invocation.
func (s *Server) handleAnalyzeText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeTextInput,
) (*mcp.CallToolResult, domain.TextAnalysis, error) {
	userID := input.UserID
	if userID == "" {
		userID = mcpUserID
	}

	analysis, err := s.ports.Analysis.AnalyzeText(ctx, userID, input.Text, input.Language)
	if err != nil {
		return nil, domain.TextAnalysis{}, err
	}
	return nil, *analysis, nil
}

// handleExtractInfo handles the extract_info tool invocation.
func (s *Server) handleExtractInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInfoInput,
) (*mcp.CallToolResult, domain.ExtractedInfo, error) {
	info, err := s.ports.Analysis.ExtractInfo(ctx, input.Text)
	if err != nil {
		return nil, domain.ExtractedInfo{}, err
	}
	return nil, *info, nil
}

// handleAuditStats handles the audit_stats tool invocation.
func (s *Server) handleAuditStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AuditStatsInput,
) (*mcp.CallToolResult, AuditStatsOutput, error) {
	stats, err := s.ports.Audit.Stats(ctx, input.UserID)
	if err != nil {
		return nil, AuditStatsOutput{}, err
	}
	return nil, AuditStatsOutput{
		TotalRequests:       stats.TotalRequests,
		SuccessfulRequests:  stats.SuccessfulRequests,
		FailedRequests:      stats.FailedRequests,
		SuccessRate:         stats.SuccessRate(),
		AvgProcessingTime:   stats.AvgProcessingTime,
		TotalProcessingTime: stats.TotalProcessingTime,
	}, nil
}

func decodeDocument(arg DocumentArg) (domain.DocumentInput, error) {
	doc := domain.DocumentInput{
		Filename:    arg.Filename,
		ContentType: arg.ContentType,
	}

	switch {
	case arg.ContentBase64 != "":
		data, err := base64.StdEncoding.DecodeString(arg.ContentBase64)
		if err != nil {
			return doc, fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		doc.Content = data
	default:
		doc.Content = []byte(arg.Text)
		if doc.ContentType == "" {
			doc.ContentType = "text/plain"
		}
	}

	return doc, nil
}

func toOutcomeOutput(r *domain.DocumentOutcome) OutcomeOutput {
	out := OutcomeOutput{
		Filename:  r.Filename,
		Status:    string(r.Status),
		Score:     r.SimilarityScore,
		Excerpts:  r.RelevantExcerpts,
		ErrorKind: string(r.ErrorKind),
	}
	if r.Summary != nil {
		out.Summary = *r.Summary
	}
	if r.Justification != nil {
		out.Justification = *r.Justification
	}
	if r.ErrorMessage != nil {
		out.Error = *r.ErrorMessage
	}
	return out
}
