package domain

import "time"

// AuditBackend selects where the audit trail is stored.
type AuditBackend string

// Available audit backends.
const (
	// AuditBackendSQLite persists the audit trail in a local SQLite database.
	AuditBackendSQLite AuditBackend = "sqlite"

	// AuditBackendMemory keeps the audit trail for the life of the process.
	AuditBackendMemory AuditBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b AuditBackend) IsValid() bool {
	return b == AuditBackendSQLite || b == AuditBackendMemory
}

// String returns the string representation.
func (b AuditBackend) String() string {
	return string(b)
}

// PipelineSettings controls how a batch is scheduled.
type PipelineSettings struct {
	// Workers is the number of documents processed at once. 1 is sequential.
	Workers int

	// DocumentTimeout bounds one document's work. Zero disables it.
	DocumentTimeout time.Duration

	// DocumentsPerSecond paces document starts. Zero disables pacing.
	DocumentsPerSecond float64

	// MaxDocuments rejects larger batches. Zero disables the limit.
	MaxDocuments int

	// MaxDocumentBytes fails individual oversized documents. Zero disables the limit.
	MaxDocumentBytes int
}

// AnalysisSettings controls the text analyzer.
type AnalysisSettings struct {
	// MaxExcerpts is the number of relevant excerpts reported per document.
	MaxExcerpts int

	// Keywords is the number of keywords reported by single-text analysis.
	Keywords int
}

// AuditSettings controls the audit trail.
type AuditSettings struct {
	Backend      AuditBackend
	DataDir      string
	WriteTimeout time.Duration
}

// OCRSettings controls OCR and PDF rasterisation.
type OCRSettings struct {
	// DPI is the resolution used to rasterise PDF pages.
	DPI int

	// RasterTool is the pdftoppm binary name or path.
	RasterTool string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Pipeline PipelineSettings
	Analysis AnalysisSettings
	Audit    AuditSettings
	OCR      OCRSettings

	// DefaultLanguage is used when a request carries no language.
	DefaultLanguage string
}

// DefaultAppSettings returns settings with sensible defaults.
// Processing is sequential and unbounded in time unless configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pipeline: PipelineSettings{
			Workers:          1,
			MaxDocuments:     100,
			MaxDocumentBytes: 50 << 20,
		},
		Analysis: AnalysisSettings{
			MaxExcerpts: 3,
			Keywords:    10,
		},
		Audit: AuditSettings{
			Backend:      AuditBackendSQLite,
			WriteTimeout: 5 * time.Second,
		},
		OCR: OCRSettings{
			DPI:        150,
			RasterTool: "pdftoppm",
		},
		DefaultLanguage: "pt",
	}
}
