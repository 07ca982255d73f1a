// Package extractors selects the text extractor for a document kind.
//
// Extractors live in sub-packages, one per kind:
//
//   - plaintext: lenient UTF-8 decoding
//   - image: OCR over a whole image
//   - pdf: embedded text layer per page, OCR fallback for scanned pages
//
// The Registry recovers from extractor panics, so a misbehaving extractor
// fails only the document it was given.
package extractors
