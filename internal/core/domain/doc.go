// Package domain defines the core business entities for docsift.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentInput: An uploaded document awaiting processing
//   - ExtractionResult: Text recovered from a document plus a confidence
//   - DocumentOutcome: The per-document result of a batch run
//   - BatchRun: The aggregate result of one batch submission
//   - AuditEntry / AuditRecord: The audit trail of processing runs
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
