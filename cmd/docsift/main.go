// Command docsift extracts, summarises and ranks batches of documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/docsift/cgo/tesseract"
	"github.com/custodia-labs/docsift/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docsift/internal/adapters/driven/langdetect/lingua"
	"github.com/custodia-labs/docsift/internal/adapters/driven/raster/poppler"
	"github.com/custodia-labs/docsift/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsift/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docsift/internal/adapters/driving/cli"
	"github.com/custodia-labs/docsift/internal/analyzers/heuristic"
	"github.com/custodia-labs/docsift/internal/analyzers/infoextract"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/services"
	"github.com/custodia-labs/docsift/internal/extractors"
	imageextractor "github.com/custodia-labs/docsift/internal/extractors/image"
	pdfextractor "github.com/custodia-labs/docsift/internal/extractors/pdf"
	"github.com/custodia-labs/docsift/internal/extractors/plaintext"
	"github.com/custodia-labs/docsift/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires adapters and services from the configuration in configDir.
func buildServices(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	sink, closeSink, err := openAuditSink(settings.Audit, configDir)
	if err != nil {
		return nil, err
	}

	ocr := tesseract.New(settings.OCR.DPI)
	if !ocr.Available() {
		logger.Debug("tesseract not compiled in; images and scanned pages yield no text")
	}
	rasterizer := poppler.New(settings.OCR.RasterTool, settings.OCR.DPI)

	pdf := pdfextractor.New(rasterizer, ocr)
	registry := extractors.NewRegistry(
		plaintext.New(),
		imageextractor.New(ocr),
		pdf,
	)

	analyzer := heuristic.New()
	batch := services.NewBatchOrchestrator(registry, analyzer, sink, *settings)
	analysis := services.NewAnalysisService(analyzer, infoextract.New(), lingua.New(), pdf, sink, *settings)

	return &cli.Services{
		Batch:    batch,
		Analysis: analysis,
		Audit:    services.NewAuditService(sink, analyzer, ocr),
		Settings: settingsService,
		Close: func() error {
			// Drain pending audit writes before the sink goes away.
			return errors.Join(batch.Close(), analysis.Close(), closeSink())
		},
	}, nil
}

// openAuditSink opens the configured audit backend. An empty data directory
// follows --config-dir when one is given.
func openAuditSink(cfg domain.AuditSettings, configDir string) (driven.AuditSink, func() error, error) {
	if cfg.Backend == domain.AuditBackendMemory {
		return memory.NewAuditStore(), func() error { return nil }, nil
	}

	dataDir := cfg.DataDir
	if dataDir == "" && configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit store: %w", err)
	}
	logger.Debug("audit trail at %s", store.Path())
	return store.AuditSink(), store.Close, nil
}
