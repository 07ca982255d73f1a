// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TextExtractor: Recovers text from one kind of document
//   - ExtractorRegistry: Selects the extractor for a document kind
//   - TextAnalyzer: Summary, keywords, sentiment, categories and similarity
//   - AuditSink: Audit trail persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - OCREngine: Image text recognition. Without it, images and scanned PDF pages yield no text.
//   - PageRasterizer: PDF page rendering. Without it, scanned PDF pages yield no text.
//   - LanguageDetector: Detected language in single-text analysis.
//   - InfoExtractor: Structured field extraction (emails, phones, dates).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or analyzer package
package driven
