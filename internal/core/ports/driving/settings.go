package driving

import "github.com/custodia-labs/timecard-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// EnsureDefaults writes the default settings when no configuration
	// exists yet. It reports whether defaults were written.
	EnsureDefaults() (bool, error)

	// SetTheme updates the UI theme.
	SetTheme(theme domain.Theme) error

	// SetRemote updates the remote account and employee identifiers.
	SetRemote(account, employeeID string) error

	// SetDBFile updates the entry database location.
	SetDBFile(path string) error

	// Set updates one setting by its configuration key.
	Set(key, value string) error

	// Templates returns the entry templates used by "add defaults".
	Templates() ([]domain.EntryTemplate, error)

	// Controls returns the remote form controls with overrides applied.
	Controls() (domain.FormControls, error)

	// Validate checks that submission is configured.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
