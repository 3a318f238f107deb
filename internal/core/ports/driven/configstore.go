package driven

import "github.com/custodia-labs/glazed/internal/core/domain"

// ConfigStore provides access to the service settings.
// Implementations handle persistence (TOML or YAML files) and defaults.
type ConfigStore interface {
	// Load reads the settings from storage, applies defaults and validates
	// the result. A missing file yields the defaults.
	Load() (domain.Settings, error)

	// Save writes the settings to storage.
	Save(settings domain.Settings) error

	// Path returns the configuration file path.
	Path() string
}
