// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Name is the configured theme this palette renders.
	Name domain.Theme

	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour. Empty keeps the terminal's.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the palette of the terminal's own ANSI colours.
func DefaultTheme() *Theme {
	return &Theme{
		Name:       domain.ThemeDefault,
		Primary:    lipgloss.Color("4"),  // Blue
		Secondary:  lipgloss.Color("6"),  // Cyan
		Foreground: lipgloss.Color("7"),  // White
		Muted:      lipgloss.Color("8"),  // Bright black
		Success:    lipgloss.Color("2"),  // Green
		Warning:    lipgloss.Color("3"),  // Yellow
		Error:      lipgloss.Color("1"),  // Red
		Border:     lipgloss.Color("8"),  // Bright black
	}
}

// BrightTheme returns the saturated palette for dark backgrounds.
func BrightTheme() *Theme {
	return &Theme{
		Name:       domain.ThemeBright,
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// FancyTheme returns accent colours over a transparent background.
func FancyTheme() *Theme {
	return &Theme{
		Name:       domain.ThemeFancy,
		Primary:    lipgloss.Color("#FF79C6"), // Pink
		Secondary:  lipgloss.Color("#8BE9FD"), // Cyan
		Foreground: lipgloss.Color("#F8F8F2"), // Off white
		Muted:      lipgloss.Color("#6272A4"), // Comment blue
		Success:    lipgloss.Color("#50FA7B"), // Green
		Warning:    lipgloss.Color("#F1FA8C"), // Yellow
		Error:      lipgloss.Color("#FF5555"), // Red
		Border:     lipgloss.Color("#BD93F9"), // Purple
	}
}

// MonochromeTheme returns a palette without colour. Styles fall back to
// bold, faint and reverse attributes.
func MonochromeTheme() *Theme {
	return &Theme{Name: domain.ThemeMonochrome}
}

// ForTheme returns the palette of a configured theme. Unknown themes get
// the bright palette, which is the configured default.
func ForTheme(name domain.Theme) *Theme {
	switch name {
	case domain.ThemeDefault:
		return DefaultTheme()
	case domain.ThemeFancy:
		return FancyTheme()
	case domain.ThemeMonochrome:
		return MonochromeTheme()
	default:
		return BrightTheme()
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = BrightTheme()
	}

	s := &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Faint(theme.Muted == "").
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Background).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}

	if theme.Name == domain.ThemeMonochrome {
		s.Selected = s.Selected.Reverse(true)
		s.Error = s.Error.Bold(true).Underline(true)
	}
	if theme.Name == domain.ThemeFancy {
		s.Title = s.Title.Underline(true)
		s.InputField = s.InputField.BorderStyle(lipgloss.DoubleBorder())
	}

	return s
}

// DefaultStyles returns styles with the configured default theme.
func DefaultStyles() *Styles {
	return NewStyles(ForTheme(domain.DefaultAppSettings().General.Theme))
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Apply switches s to theme in place. Views sharing s pick up the new
// palette on their next render.
func (s *Styles) Apply(theme *Theme) {
	*s = *NewStyles(theme)
}
