package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docsift resources.
	uriScheme = "docsift://"

	// auditLogsPageSize is the number of records returned by the audit log resource.
	auditLogsPageSize = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "languages",
		Name:        "languages",
		Description: "Languages accepted for extraction",
		MIMEType:    "application/json",
	}, s.handleLanguagesResource)

	if s.ports.Audit == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "health",
		Name:        "health",
		Description: "Availability of the audit trail, analyzer and OCR engine",
		MIMEType:    "application/json",
	}, s.handleHealthResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "audit/{userId}/logs",
		Name:        "audit-logs",
		Description: "Most recent audit records of a user",
		MIMEType:    "application/json",
	}, s.handleAuditLogsResource)
}

// handleLanguagesResource returns the supported languages.
func (s *Server) handleLanguagesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	langs := domain.SupportedLanguages()
	if s.ports.Analysis != nil {
		langs = s.ports.Analysis.SupportedLanguages()
	}
	return jsonResource(req.Params.URI, langs)
}

// handleHealthResource returns the component health report.
func (s *Server) handleHealthResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Audit.Health(ctx))
}

// handleAuditLogsResource returns the first page of a user's audit records.
func (s *Server) handleAuditLogsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract userId from URI: docsift://audit/{userId}/logs
	userID := extractUserID(req.Params.URI)
	if userID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Audit.Logs(ctx, userID, 1, auditLogsPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}

	return jsonResource(req.Params.URI, page)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractUserID extracts the user ID from a URI like docsift://audit/{userId}/logs.
func extractUserID(uri string) string {
	const prefix = uriScheme + "audit/"
	const suffix = "/logs"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
