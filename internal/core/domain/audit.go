package domain

import "time"

// Audit record statuses.
const (
	AuditStatusSuccess = "success"
	AuditStatusError   = "error"
)

// Audit result types.
const (
	AuditTypeBatch        = "batch_processing"
	AuditTypeTextAnalysis = "text_analysis"
)

// AuditEntry is one processing run to be recorded.
// Result carries aggregate counts and flags only, never document content.
type AuditEntry struct {
	RequestID      string         `json:"request_id"`
	UserID         string         `json:"user_id"`
	Query          *string        `json:"query"`
	Result         map[string]any `json:"result"`
	ProcessingTime *float64       `json:"processing_time"`
	Error          *string        `json:"error"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Status returns "error" when the entry carries an error, else "success".
func (e AuditEntry) Status() string {
	if e.Error != nil && *e.Error != "" {
		return AuditStatusError
	}
	return AuditStatusSuccess
}

// AuditRecord is a stored audit entry.
type AuditRecord struct {
	ID string `json:"id"`
	AuditEntry
	Status string `json:"status"`
}

// AuditQuery selects audit records, newest first.
type AuditQuery struct {
	// UserID filters by user when non-empty.
	UserID string
	Limit  int
	Offset int
}

// AuditStats aggregates the audit trail.
type AuditStats struct {
	TotalRequests       int     `json:"total_requests"`
	SuccessfulRequests  int     `json:"successful_requests"`
	FailedRequests      int     `json:"failed_requests"`
	AvgProcessingTime   float64 `json:"avg_processing_time"`
	TotalProcessingTime float64 `json:"total_processing_time"`
}

// SuccessRate returns the fraction of successful requests, 0 when empty.
func (s AuditStats) SuccessRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.SuccessfulRequests) / float64(s.TotalRequests)
}

// AuditPage is one page of audit records.
type AuditPage struct {
	Records []AuditRecord `json:"logs"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}
