package domain

const unknownDescription = "Unknown"

// Theme names a colour scheme of the terminal UI.
type Theme string

// Available themes.
const (
	// ThemeDefault follows the terminal's own palette.
	ThemeDefault Theme = "default"

	// ThemeBright uses saturated colours on dark backgrounds.
	ThemeBright Theme = "bright"

	// ThemeFancy adds borders and accent colours.
	ThemeFancy Theme = "fancy"

	// ThemeMonochrome renders without colour.
	ThemeMonochrome Theme = "monochrome"
)

// AllThemes returns all available themes.
func AllThemes() []Theme {
	return []Theme{ThemeDefault, ThemeBright, ThemeFancy, ThemeMonochrome}
}

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeDefault, ThemeBright, ThemeFancy, ThemeMonochrome:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// Description returns a human-readable description of the theme.
func (t Theme) Description() string {
	switch t {
	case ThemeDefault:
		return "Default (terminal colours)"
	case ThemeBright:
		return "Bright (high contrast)"
	case ThemeFancy:
		return "Fancy (accents and borders)"
	case ThemeMonochrome:
		return "Monochrome (no colour)"
	default:
		return unknownDescription
	}
}

// GeneralSettings holds local application configuration.
type GeneralSettings struct {
	// DBFile is the path of the entry database.
	DBFile string

	// Theme is the terminal UI colour scheme.
	Theme Theme

	// DailyHours is the expected total of a day. Totals that differ are
	// highlighted.
	DailyHours float64
}

// RemoteSettings holds configuration of the remote time-card system.
type RemoteSettings struct {
	// Account is the login account identifier.
	Account string

	// EmployeeID identifies the person on the remote time card.
	EmployeeID string

	// BaseURL is the root of the remote application's screens.
	BaseURL string

	// LoginMarker is a page-title substring shown while the login page
	// is still displayed.
	LoginMarker string

	// DateFormat is the Go time layout the remote date field accepts.
	DateFormat string

	// TimeoutSeconds bounds the implicit wait of every driver call.
	TimeoutSeconds int

	// LoginTimeoutSeconds bounds how long login may take.
	LoginTimeoutSeconds int

	// SettleMillis is the pause between committing an entry and reading
	// its error field.
	SettleMillis int

	// ActionsPerSecond limits driver calls. Zero disables the limit.
	ActionsPerSecond int

	// Headless hides the browser window.
	Headless bool

	// KeyringService is the service name secrets are stored under.
	KeyringService string
}

// HomeURL returns the page that carries the login form.
func (r RemoteSettings) HomeURL() string {
	return r.BaseURL + "WORKDESK"
}

// TimeCardURL returns the time-card screen.
func (r RemoteSettings) TimeCardURL() string {
	return r.BaseURL + "TIMECARD_VIEW"
}

// IsConfigured returns true if the remote identity is set.
func (r RemoteSettings) IsConfigured() bool {
	return r.Account != "" && r.EmployeeID != "" && r.BaseURL != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// General holds local settings.
	General GeneralSettings

	// Remote holds remote system settings.
	Remote RemoteSettings

	// Controls maps form roles to remote control identifiers.
	Controls FormControls

	// Templates are appended by "add defaults".
	Templates []EntryTemplate
}

// DefaultAppSettings returns settings with the documented defaults.
// The remote identity is left empty until the user configures it.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		General: GeneralSettings{
			DBFile:     "~/Documents/time_cards.db",
			Theme:      ThemeBright,
			DailyHours: 8.0,
		},
		Remote: RemoteSettings{
			BaseURL:             "https://cmms.admin.washington.edu/fmax/screen/",
			LoginMarker:         "NetID",
			DateFormat:          "Jan 02, 2006",
			TimeoutSeconds:      20,
			LoginTimeoutSeconds: 60,
			SettleMillis:        250,
			ActionsPerSecond:    0,
			Headless:            true,
			KeyringService:      "aim",
		},
		Controls:  DefaultFormControls(),
		Templates: DefaultEntryTemplates(),
	}
}
