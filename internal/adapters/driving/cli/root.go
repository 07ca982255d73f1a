// Package cli implements the docsift command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired into the commands.
var (
	batchService    driving.BatchService
	analysisService driving.AnalysisService
	auditService    driving.AuditService
	settingsService driving.SettingsService
)

// Services groups the driving ports the commands use.
type Services struct {
	Batch    driving.BatchService
	Analysis driving.AnalysisService
	Audit    driving.AuditService
	Settings driving.SettingsService

	// Close releases resources once the command has finished. May be nil.
	Close func() error
}

// ServiceFactory builds services for the given configuration directory.
type ServiceFactory func(configDir string) (*Services, error)

var (
	serviceFactory ServiceFactory
	closeServices  func() error
)

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// skipServices marks commands that run without the service layer.
const skipServices = "skip-services"

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Batch document extraction, summary and ranking",
	Long: `docsift extracts text from PDFs, images and plain text files (using OCR
when a page has no text layer), summarises each document and, when given a
query, ranks the documents by similarity to it. Every run is recorded in an
audit trail.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docsift)")
}

// SetServices injects the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		batchService, analysisService, auditService, settingsService = nil, nil, nil, nil
		return
	}
	batchService = s.Batch
	analysisService = s.Analysis
	auditService = s.Audit
	settingsService = s.Settings
}

// SetServiceFactory sets how services are built once flags are parsed.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := teardownServices(); err == nil {
		err = closeErr
	}
	return err
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if serviceFactory == nil || cmd.Annotations[skipServices] == "true" {
		return nil
	}

	services, err := serviceFactory(configDir)
	if err != nil {
		return err
	}
	SetServices(services)
	closeServices = services.Close
	return nil
}

func teardownServices() error {
	if closeServices == nil {
		return nil
	}
	closer := closeServices
	closeServices = nil
	return closer()
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func notConfigured(name string) error {
	return errors.New(name + " service not configured")
}
