package driving

import "github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with environment credentials applied.
	Get() (*domain.Settings, error)

	// Save persists settings. Credentials are never written.
	Save(settings *domain.Settings) error

	// SetModel updates the default language model.
	SetModel(model string) error

	// Set updates a single setting by its dotted key (e.g. "retrieval.k").
	Set(key, value string) error

	// Keys returns the settable keys, sorted.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Path returns the configuration file path.
	Path() string
}
