// Package tesseract provides OCR through the Tesseract engine via gosseract.
// It implements the driven.OCREngine interface.
//
// Build requires:
//   - Tesseract and Leptonica development libraries
//   - Install via: brew install tesseract (macOS) or apt install libtesseract-dev libleptonica-dev (Linux)
//   - Language data for por, eng and spa (apt install tesseract-ocr-por tesseract-ocr-spa)
//
// Builds without CGO get a stub whose Recognize returns domain.ErrOCRUnavailable.
package tesseract
