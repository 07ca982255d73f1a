package domain

import (
	"strings"
	"time"
)

// OutcomeStatus is the terminal state of one document in a batch.
type OutcomeStatus string

// Terminal document states.
const (
	StatusCompleted OutcomeStatus = "completed"
	StatusFailed    OutcomeStatus = "failed"
)

// Processing modes recorded in the audit trail.
const (
	ModeRanking     = "ranking"
	ModeSummaryOnly = "summary_only"
)

// DocumentOutcome is the per-document result of a batch run.
//
// ExtractedText and Summary are set iff Status is completed.
// SimilarityScore, Justification and RelevantExcerpts are set iff the run
// had a query and Status is completed. ErrorKind and ErrorMessage are set
// iff Status is failed.
type DocumentOutcome struct {
	DocumentID       string        `json:"document_id"`
	Filename         string        `json:"filename"`
	Status           OutcomeStatus `json:"status"`
	ExtractedText    *string       `json:"extracted_text"`
	Summary          *string       `json:"summary"`
	SimilarityScore  *float64      `json:"similarity_score"`
	Justification    *string       `json:"justification"`
	RelevantExcerpts []string      `json:"relevant_excerpts"`
	ProcessingTime   float64       `json:"processing_time"`
	ErrorKind        ErrorKind     `json:"error_kind,omitempty"`
	ErrorMessage     *string       `json:"error_message"`
}

// Succeeded returns true if the document completed.
func (o DocumentOutcome) Succeeded() bool {
	return o.Status == StatusCompleted
}

// Score returns the similarity score, treating a missing score as 0.
func (o DocumentOutcome) Score() float64 {
	if o.SimilarityScore == nil {
		return 0
	}
	return *o.SimilarityScore
}

// BatchRequest is one batch submission.
type BatchRequest struct {
	// RequestID is the caller's correlation id.
	RequestID string `json:"request_id"`

	// UserID identifies the submitting user.
	UserID string `json:"user_id"`

	// Query is optional; blank means absent.
	Query string `json:"query,omitempty"`

	// Language is a raw language code; see NormaliseLanguage.
	Language string `json:"language,omitempty"`

	// Documents in submission order.
	Documents []DocumentInput `json:"documents"`
}

// NormalisedQuery returns the trimmed query, or nil if it is blank.
func (r BatchRequest) NormalisedQuery() *string {
	return NormaliseQuery(r.Query)
}

// NormaliseQuery returns a pointer to the trimmed query, or nil when the
// query is empty or whitespace only.
func NormaliseQuery(q string) *string {
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// BatchRun is the aggregate result of one batch submission.
// TotalDocuments always equals SuccessfulDocuments + FailedDocuments and
// len(Results). Results are ranked by score when Query is set and are in
// input order otherwise.
type BatchRun struct {
	RequestID           string            `json:"request_id"`
	UserID              string            `json:"user_id"`
	Query               *string           `json:"query"`
	TotalDocuments      int               `json:"total_documents"`
	SuccessfulDocuments int               `json:"successful_documents"`
	FailedDocuments     int               `json:"failed_documents"`
	Results             []DocumentOutcome `json:"results"`
	TotalProcessingTime float64           `json:"total_processing_time"`
	Timestamp           time.Time         `json:"timestamp"`
}

// HasQuery returns true if the run was ranked against a query.
func (r *BatchRun) HasQuery() bool {
	return r.Query != nil
}

// Mode returns the processing mode name recorded in the audit trail.
func (r *BatchRun) Mode() string {
	if r.HasQuery() {
		return ModeRanking
	}
	return ModeSummaryOnly
}
