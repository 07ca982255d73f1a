package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyWorkers            = "pipeline.workers"
	keyDocumentTimeout    = "pipeline.document_timeout"
	keyDocumentsPerSecond = "pipeline.documents_per_second"
	keyMaxDocuments       = "pipeline.max_documents"
	keyMaxDocumentBytes   = "pipeline.max_document_bytes"
	keyMaxExcerpts        = "analysis.max_excerpts"
	keyKeywords           = "analysis.keywords"
	keyDefaultLanguage    = "language.default"
	keyAuditBackend       = "audit.backend"
	keyAuditDataDir       = "audit.data_dir"
	keyAuditWriteTimeout  = "audit.write_timeout"
	keyOCRDPI             = "ocr.dpi"
	keyOCRRasterTool      = "ocr.raster_tool"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindDuration
)

// settingKinds lists every key Set accepts and how its value is parsed.
var settingKinds = map[string]valueKind{
	keyWorkers:            kindInt,
	keyDocumentTimeout:    kindDuration,
	keyDocumentsPerSecond: kindFloat,
	keyMaxDocuments:       kindInt,
	keyMaxDocumentBytes:   kindInt,
	keyMaxExcerpts:        kindInt,
	keyKeywords:           kindInt,
	keyDefaultLanguage:    kindString,
	keyAuditBackend:       kindString,
	keyAuditDataDir:       kindString,
	keyAuditWriteTimeout:  kindDuration,
	keyOCRDPI:             kindInt,
	keyOCRRasterTool:      kindString,
}

// SettingKeys returns every configurable key in sorted order.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings, with defaults for
// anything missing or out of range.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Pipeline: domain.PipelineSettings{
			Workers:            s.getInt(keyWorkers, defaults.Pipeline.Workers),
			DocumentTimeout:    s.getDuration(keyDocumentTimeout, defaults.Pipeline.DocumentTimeout),
			DocumentsPerSecond: s.getFloat(keyDocumentsPerSecond, defaults.Pipeline.DocumentsPerSecond),
			MaxDocuments:       s.getInt(keyMaxDocuments, defaults.Pipeline.MaxDocuments),
			MaxDocumentBytes:   s.getInt(keyMaxDocumentBytes, defaults.Pipeline.MaxDocumentBytes),
		},
		Analysis: domain.AnalysisSettings{
			MaxExcerpts: s.getInt(keyMaxExcerpts, defaults.Analysis.MaxExcerpts),
			Keywords:    s.getInt(keyKeywords, defaults.Analysis.Keywords),
		},
		Audit: domain.AuditSettings{
			Backend:      s.getAuditBackend(defaults.Audit.Backend),
			DataDir:      s.getString(keyAuditDataDir, defaults.Audit.DataDir),
			WriteTimeout: s.getDuration(keyAuditWriteTimeout, defaults.Audit.WriteTimeout),
		},
		OCR: domain.OCRSettings{
			DPI:        s.getInt(keyOCRDPI, defaults.OCR.DPI),
			RasterTool: s.getString(keyOCRRasterTool, defaults.OCR.RasterTool),
		},
		DefaultLanguage: s.getString(keyDefaultLanguage, defaults.DefaultLanguage),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}
	if !settings.Audit.Backend.IsValid() {
		return fmt.Errorf("invalid audit backend %q: %w", settings.Audit.Backend, domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyWorkers, settings.Pipeline.Workers},
		{keyDocumentTimeout, settings.Pipeline.DocumentTimeout.String()},
		{keyDocumentsPerSecond, settings.Pipeline.DocumentsPerSecond},
		{keyMaxDocuments, settings.Pipeline.MaxDocuments},
		{keyMaxDocumentBytes, settings.Pipeline.MaxDocumentBytes},
		{keyMaxExcerpts, settings.Analysis.MaxExcerpts},
		{keyKeywords, settings.Analysis.Keywords},
		{keyDefaultLanguage, settings.DefaultLanguage},
		{keyAuditBackend, settings.Audit.Backend.String()},
		{keyAuditDataDir, settings.Audit.DataDir},
		{keyAuditWriteTimeout, settings.Audit.WriteTimeout.String()},
		{keyOCRDPI, settings.OCR.DPI},
		{keyOCRRasterTool, settings.OCR.RasterTool},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for a known key and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	value = strings.TrimSpace(value)

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%s must be a non-negative number: %w", key, domain.ErrInvalidInput)
		}
		parsed = f
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%s must be a duration such as 30s: %w", key, domain.ErrInvalidInput)
		}
		parsed = d.String()
	default:
		if key == keyAuditBackend && !domain.AuditBackend(value).IsValid() {
			return fmt.Errorf("audit.backend must be sqlite or memory: %w", domain.ErrInvalidInput)
		}
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Values returns the effective value of every setting key as text.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		keyWorkers:            strconv.Itoa(settings.Pipeline.Workers),
		keyDocumentTimeout:    settings.Pipeline.DocumentTimeout.String(),
		keyDocumentsPerSecond: strconv.FormatFloat(settings.Pipeline.DocumentsPerSecond, 'g', -1, 64),
		keyMaxDocuments:       strconv.Itoa(settings.Pipeline.MaxDocuments),
		keyMaxDocumentBytes:   strconv.Itoa(settings.Pipeline.MaxDocumentBytes),
		keyMaxExcerpts:        strconv.Itoa(settings.Analysis.MaxExcerpts),
		keyKeywords:           strconv.Itoa(settings.Analysis.Keywords),
		keyDefaultLanguage:    settings.DefaultLanguage,
		keyAuditBackend:       settings.Audit.Backend.String(),
		keyAuditDataDir:       settings.Audit.DataDir,
		keyAuditWriteTimeout:  settings.Audit.WriteTimeout.String(),
		keyOCRDPI:             strconv.Itoa(settings.OCR.DPI),
		keyOCRRasterTool:      settings.OCR.RasterTool,
	}, nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val := s.configStore.GetFloat(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := s.configStore.GetDuration(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getAuditBackend(defaultVal domain.AuditBackend) domain.AuditBackend {
	backend := domain.AuditBackend(s.configStore.GetString(keyAuditBackend))
	if backend.IsValid() {
		return backend
	}
	return defaultVal
}
