package domain

import "strings"

// DefaultOCRLanguage is used when a language code is missing or unknown.
const DefaultOCRLanguage = "por"

// languageCodes maps accepted short and native codes to OCR language codes.
var languageCodes = map[string]string{
	"pt":  "por",
	"en":  "eng",
	"es":  "spa",
	"por": "por",
	"eng": "eng",
	"spa": "spa",
}

// NormaliseLanguage maps a caller language code to the OCR engine's code.
// Matching is case-insensitive; unknown or empty codes map to "por".
func NormaliseLanguage(code string) string {
	if mapped, ok := languageCodes[strings.ToLower(strings.TrimSpace(code))]; ok {
		return mapped
	}
	return DefaultOCRLanguage
}

// SupportedLanguage describes one accepted language.
type SupportedLanguage struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	OCRCode string `json:"ocr_code"`
}

// SupportedLanguages returns the languages accepted for extraction.
func SupportedLanguages() []SupportedLanguage {
	return []SupportedLanguage{
		{Code: "pt", Name: "Português", OCRCode: "por"},
		{Code: "en", Name: "English", OCRCode: "eng"},
		{Code: "es", Name: "Español", OCRCode: "spa"},
	}
}
