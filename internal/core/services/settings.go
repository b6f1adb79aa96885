package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDBFile              = "general.db_file"
	keyTheme               = "general.theme"
	keyDailyHours          = "general.daily_hours"
	keyAccount             = "remote.account"
	keyEmployeeID          = "remote.employee_id"
	keyBaseURL             = "remote.base_url"
	keyLoginMarker         = "remote.login_marker"
	keyDateFormat          = "remote.date_format"
	keyTimeoutSeconds      = "remote.timeout_seconds"
	keyLoginTimeoutSeconds = "remote.login_timeout_seconds"
	keySettleMillis        = "remote.settle_millis"
	keyActionsPerSecond    = "remote.actions_per_second"
	keyHeadless            = "remote.headless"
	keyKeyringService      = "remote.keyring_service"
	keyTemplates           = "templates"
	controlsPrefix         = "controls"
)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindTheme
)

// settableKeys lists the keys accepted by Set.
var settableKeys = map[string]settingKind{
	keyDBFile:              kindString,
	keyTheme:               kindTheme,
	keyDailyHours:          kindFloat,
	keyAccount:             kindString,
	keyEmployeeID:          kindString,
	keyBaseURL:             kindString,
	keyLoginMarker:         kindString,
	keyDateFormat:          kindString,
	keyTimeoutSeconds:      kindInt,
	keyLoginTimeoutSeconds: kindInt,
	keySettleMillis:        kindInt,
	keyActionsPerSecond:    kindInt,
	keyHeadless:            kindBool,
	keyKeyringService:      kindString,
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

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		General: domain.GeneralSettings{
			DBFile:     s.getString(keyDBFile, defaults.General.DBFile),
			Theme:      s.getTheme(defaults.General.Theme),
			DailyHours: s.getFloat(keyDailyHours, defaults.General.DailyHours),
		},
		Remote: domain.RemoteSettings{
			Account:             s.configStore.GetString(keyAccount),
			EmployeeID:          s.configStore.GetString(keyEmployeeID),
			BaseURL:             s.getString(keyBaseURL, defaults.Remote.BaseURL),
			LoginMarker:         s.getString(keyLoginMarker, defaults.Remote.LoginMarker),
			DateFormat:          s.getString(keyDateFormat, defaults.Remote.DateFormat),
			TimeoutSeconds:      s.getInt(keyTimeoutSeconds, defaults.Remote.TimeoutSeconds),
			LoginTimeoutSeconds: s.getInt(keyLoginTimeoutSeconds, defaults.Remote.LoginTimeoutSeconds),
			SettleMillis:        s.getInt(keySettleMillis, defaults.Remote.SettleMillis),
			ActionsPerSecond:    s.getInt(keyActionsPerSecond, defaults.Remote.ActionsPerSecond),
			Headless:            s.getBool(keyHeadless, defaults.Remote.Headless),
			KeyringService:      s.getString(keyKeyringService, defaults.Remote.KeyringService),
		},
	}

	controls, err := s.Controls()
	if err != nil {
		return nil, err
	}
	settings.Controls = controls

	templates, err := s.Templates()
	if err != nil {
		return nil, err
	}
	settings.Templates = templates

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyDBFile, settings.General.DBFile},
		{keyTheme, settings.General.Theme.String()},
		{keyDailyHours, settings.General.DailyHours},
		{keyAccount, settings.Remote.Account},
		{keyEmployeeID, settings.Remote.EmployeeID},
		{keyBaseURL, settings.Remote.BaseURL},
		{keyLoginMarker, settings.Remote.LoginMarker},
		{keyDateFormat, settings.Remote.DateFormat},
		{keyTimeoutSeconds, settings.Remote.TimeoutSeconds},
		{keyLoginTimeoutSeconds, settings.Remote.LoginTimeoutSeconds},
		{keySettleMillis, settings.Remote.SettleMillis},
		{keyActionsPerSecond, settings.Remote.ActionsPerSecond},
		{keyHeadless, settings.Remote.Headless},
		{keyKeyringService, settings.Remote.KeyringService},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only identifiers that differ from the defaults are written.
	defaults := domain.DefaultFormControls()
	for _, name := range domain.ControlNames() {
		id, _ := settings.Controls.Lookup(name)
		def, _ := defaults.Lookup(name)
		if id == "" || id == def {
			continue
		}
		if err := s.configStore.Set(controlsPrefix+"."+name, id); err != nil {
			return fmt.Errorf("save control %s: %w", name, err)
		}
	}

	templates := make([]map[string]any, 0, len(settings.Templates))
	for _, t := range settings.Templates {
		templates = append(templates, t.Fields())
	}
	if err := s.configStore.Set(keyTemplates, templates); err != nil {
		return fmt.Errorf("save templates: %w", err)
	}

	return nil
}

// EnsureDefaults writes the default settings when no configuration exists.
func (s *SettingsService) EnsureDefaults() (bool, error) {
	if _, ok := s.configStore.Get(keyTheme); ok {
		return false, nil
	}
	defaults := domain.DefaultAppSettings()
	if err := s.Save(&defaults); err != nil {
		return false, fmt.Errorf("%w: write defaults: %w", domain.ErrConfigMissing, err)
	}
	return true, nil
}

// SetTheme updates the UI theme.
func (s *SettingsService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, theme)
	}
	return s.configStore.Set(keyTheme, theme.String())
}

// SetRemote updates the remote account and employee identifiers.
func (s *SettingsService) SetRemote(account, employeeID string) error {
	if err := s.configStore.Set(keyAccount, strings.TrimSpace(account)); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	if err := s.configStore.Set(keyEmployeeID, strings.TrimSpace(employeeID)); err != nil {
		return fmt.Errorf("save employee id: %w", err)
	}
	return nil
}

// SetDBFile updates the entry database location.
func (s *SettingsService) SetDBFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyDBFile, path)
}

// Set updates one setting by its configuration key, parsing value
// according to the key's type. Control identifiers are set with
// "controls.<name>".
func (s *SettingsService) Set(key, value string) error {
	if name, ok := strings.CutPrefix(key, controlsPrefix+"."); ok {
		controls, err := s.Controls()
		if err != nil {
			return err
		}
		if _, err := controls.WithOverrides(map[string]string{name: value}); err != nil {
			return err
		}
		return s.configStore.Set(key, value)
	}

	kind, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindString:
		parsed = strings.TrimSpace(value)
	case kindTheme:
		theme := domain.Theme(value)
		if !theme.IsValid() {
			return fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, value)
		}
		parsed = theme.String()
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	}
	return s.configStore.Set(key, parsed)
}

// Templates returns the configured entry templates, or the built-in ones
// when none are configured.
func (s *SettingsService) Templates() ([]domain.EntryTemplate, error) {
	raw, ok := s.configStore.Get(keyTemplates)
	if !ok {
		return domain.DefaultEntryTemplates(), nil
	}

	var tables []map[string]any
	switch v := raw.(type) {
	case []map[string]any:
		tables = v
	case []any:
		for i, item := range v {
			table, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: template %d is not a table", domain.ErrInvalidInput, i)
			}
			tables = append(tables, table)
		}
	default:
		return nil, fmt.Errorf("%w: templates must be an array of tables", domain.ErrInvalidInput)
	}

	templates := make([]domain.EntryTemplate, 0, len(tables))
	for i, table := range tables {
		t, err := domain.EntryTemplateFromFields(table)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// Controls returns the default form controls with configured overrides.
func (s *SettingsService) Controls() (domain.FormControls, error) {
	overrides := s.configStore.GetStringMap(controlsPrefix)
	controls, err := domain.DefaultFormControls().WithOverrides(overrides)
	if err != nil {
		return domain.FormControls{}, fmt.Errorf("load controls: %w", err)
	}
	return controls, nil
}

// Validate checks that submission is configured.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if settings.Remote.Account == "" {
		return fmt.Errorf("%w: %s is not set", domain.ErrConfigMissing, keyAccount)
	}
	if settings.Remote.EmployeeID == "" {
		return fmt.Errorf("%w: %s is not set", domain.ErrConfigMissing, keyEmployeeID)
	}
	if settings.Remote.BaseURL == "" {
		return fmt.Errorf("%w: %s is not set", domain.ErrConfigMissing, keyBaseURL)
	}
	return settings.Controls.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getTheme(defaultVal domain.Theme) domain.Theme {
	val := s.configStore.GetString(keyTheme)
	if val == "" {
		return defaultVal
	}
	theme := domain.Theme(val)
	if !theme.IsValid() {
		return defaultVal
	}
	return theme
}
