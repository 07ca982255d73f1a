package driving

import "github.com/custodia-labs/docsift/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error

	// Set stores a single raw key after validating it is known.
	Set(key, value string) error

	// Values returns the effective value of every setting key as text.
	Values() (map[string]string, error)

	// Path returns the configuration file path.
	Path() string
}
