// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionRemote
	SectionLocal
	SectionTheme
	SectionPassword
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// dailyHoursKey is the configuration key of the daily target.
const dailyHoursKey = "general.daily_hours"

// overviewItems lists the sections reachable from the overview, in order.
var overviewItems = []Section{SectionRemote, SectionLocal, SectionTheme, SectionPassword}

// View is the settings configuration view.
type View struct {
	styles             *styles.Styles
	settingsService    driving.SettingsService
	credentialsService driving.CredentialsService

	// Current settings
	settings  *domain.AppSettings
	hasSecret bool
	err       error
	notice    string

	// Navigation state
	section      Section
	selected     int // selection within current section
	focusedField int // for text input focus

	accountInput    *input.Field
	employeeIDInput *input.Field
	dbFileInput     *input.Field
	dailyHoursInput *input.Field
	passwordInput   *input.Field

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view. The credentials service may be
// nil, which hides the password section.
func NewView(
	s *styles.Styles,
	settingsService driving.SettingsService,
	credentialsService driving.CredentialsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:             s,
		settingsService:    settingsService,
		credentialsService: credentialsService,
		section:            SectionOverview,
		accountInput:       input.NewField(s, "Account", "UW NetID"),
		employeeIDInput:    input.NewField(s, "Employee ID", ""),
		dbFileInput:        input.NewField(s, "Database", "~/Documents/time_cards.db"),
		dailyHoursInput:    input.NewField(s, "Daily hours", "8"),
		passwordInput:      input.NewSecretField(s, "Password"),
	}
}

// settingsLoadedMsg extends messages.SettingsLoaded with the password state.
type settingsLoadedMsg struct {
	messages.SettingsLoaded
	HasSecret bool
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return settingsLoadedMsg{
				SettingsLoaded: messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")},
			}
		}
		settings, err := v.settingsService.Get()
		if err != nil {
			return settingsLoadedMsg{SettingsLoaded: messages.SettingsLoaded{Err: err}}
		}

		hasSecret := false
		if v.credentialsService != nil && settings.Remote.Account != "" {
			hasSecret, _ = v.credentialsService.HasSecret(settings.Remote.Account)
		}
		return settingsLoadedMsg{
			SettingsLoaded: messages.SettingsLoaded{Settings: settings},
			HasSecret:      hasSecret,
		}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case settingsLoadedMsg:
		v.applyLoaded(msg.SettingsLoaded)
		v.hasSecret = msg.HasSecret
		return v, nil

	case messages.SettingsLoaded:
		v.applyLoaded(msg)
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Saved"
		v.leaveSection()
		return v, v.loadSettings()

	case messages.PasswordSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Password saved"
		v.passwordInput.Reset()
		v.leaveSection()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) applyLoaded(msg messages.SettingsLoaded) {
	if msg.Err != nil {
		v.err = msg.Err
		return
	}
	v.settings = msg.Settings
	v.err = nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewDay}
			}
		}
		v.leaveSection()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionTheme:
		return v.handleThemeKeys(msg)
	case SectionRemote:
		return v.handleFormKeys(msg, []*input.Field{v.accountInput, v.employeeIDInput}, v.saveRemote)
	case SectionLocal:
		return v.handleFormKeys(msg, []*input.Field{v.dbFileInput, v.dailyHoursInput}, v.saveLocal)
	case SectionPassword:
		return v.handleFormKeys(msg, []*input.Field{v.passwordInput}, v.savePassword)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	items := v.overview()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(items)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil || v.selected >= len(items) {
			return v, nil
		}
		return v, v.enterSection(items[v.selected])
	}
	return v, nil
}

// overview returns the sections offered on the overview.
func (v *View) overview() []Section {
	if v.credentialsService == nil {
		return overviewItems[:len(overviewItems)-1]
	}
	return overviewItems
}

func (v *View) enterSection(section Section) tea.Cmd {
	v.section = section
	v.selected = 0
	v.focusedField = 0
	v.notice = ""

	switch section {
	case SectionRemote:
		v.accountInput.SetValue(v.settings.Remote.Account)
		v.employeeIDInput.SetValue(v.settings.Remote.EmployeeID)
		v.employeeIDInput.Blur()
		return v.accountInput.Focus()
	case SectionLocal:
		v.dbFileInput.SetValue(v.settings.General.DBFile)
		v.dailyHoursInput.SetValue(strconv.FormatFloat(v.settings.General.DailyHours, 'f', -1, 64))
		v.dailyHoursInput.Blur()
		return v.dbFileInput.Focus()
	case SectionPassword:
		v.passwordInput.Reset()
		return v.passwordInput.Focus()
	case SectionTheme:
		v.selected = v.getThemeIndex()
	case SectionOverview:
	}
	return nil
}

func (v *View) leaveSection() {
	if v.section == SectionOverview {
		return
	}
	for i, s := range v.overview() {
		if s == v.section {
			v.selected = i
		}
	}
	v.section = SectionOverview
	v.focusedField = 0
	for _, in := range []*input.Field{v.accountInput, v.employeeIDInput, v.dbFileInput, v.dailyHoursInput, v.passwordInput} {
		in.Blur()
	}
}

func (v *View) handleThemeKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	themes := domain.AllThemes()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(themes)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(themes) {
			return v, v.setTheme(themes[v.selected])
		}
	}
	return v, nil
}

// handleFormKeys moves focus between fields and saves on enter.
func (v *View) handleFormKeys(msg tea.KeyMsg, fields []*input.Field, save func() tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case keyTab, keyDown, "shift+tab", "up":
		fields[v.focusedField].Blur()
		if msg.String() == keyTab || msg.String() == keyDown {
			v.focusedField = (v.focusedField + 1) % len(fields)
		} else {
			v.focusedField = (v.focusedField + len(fields) - 1) % len(fields)
		}
		return v, fields[v.focusedField].Focus()
	case keyEnter:
		return v, save()
	}

	var cmd tea.Cmd
	fields[v.focusedField], cmd = fields[v.focusedField].Update(msg)
	return v, cmd
}

// Commands to update settings.

func (v *View) setTheme(theme domain.Theme) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: v.settingsService.SetTheme(theme)}
	}
}

func (v *View) saveRemote() tea.Cmd {
	account, employeeID := v.accountInput.Value(), v.employeeIDInput.Value()
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: v.settingsService.SetRemote(account, employeeID)}
	}
}

func (v *View) saveLocal() tea.Cmd {
	dbFile, hours := v.dbFileInput.Value(), strings.TrimSpace(v.dailyHoursInput.Value())
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		if err := v.settingsService.SetDBFile(dbFile); err != nil {
			return messages.SettingsSaved{Err: err}
		}
		if hours != "" {
			if err := v.settingsService.Set(dailyHoursKey, hours); err != nil {
				return messages.SettingsSaved{Err: err}
			}
		}
		return messages.SettingsSaved{}
	}
}

func (v *View) savePassword() tea.Cmd {
	secret := v.passwordInput.Value()
	account := ""
	if v.settings != nil {
		account = v.settings.Remote.Account
	}
	return func() tea.Msg {
		if v.credentialsService == nil {
			return messages.PasswordSaved{Err: fmt.Errorf("credentials service not available")}
		}
		if account == "" {
			return messages.PasswordSaved{Err: fmt.Errorf("%w: set the account first", domain.ErrInvalidInput)}
		}
		if secret == "" {
			return messages.PasswordSaved{Err: v.credentialsService.DeleteSecret(account)}
		}
		return messages.PasswordSaved{Err: v.credentialsService.SetSecret(account, secret)}
	}
}

func (v *View) getThemeIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, t := range domain.AllThemes() {
		if t == v.settings.General.Theme {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionRemote:
		b.WriteString(v.renderForm("Remote account", v.accountInput, v.employeeIDInput))
	case SectionLocal:
		b.WriteString(v.renderForm("Local storage", v.dbFileInput, v.dailyHoursInput))
	case SectionTheme:
		b.WriteString(v.renderThemeSelect())
	case SectionPassword:
		b.WriteString(v.renderForm("Password for "+v.settings.Remote.Account, v.passwordInput))
		b.WriteString(v.styles.Muted.Render("Leave empty to forget the stored password."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	for i, section := range v.overview() {
		label, value := v.describe(section)
		line := fmt.Sprintf("%s%s: %s", indicator(i == v.selected), label, value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Ready to submit"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// describe returns the overview label and current value of a section.
func (v *View) describe(section Section) (string, string) {
	switch section {
	case SectionRemote:
		return "Remote account", fmt.Sprintf("%s / %s",
			orNotSet(v.settings.Remote.Account), orNotSet(v.settings.Remote.EmployeeID))
	case SectionLocal:
		return "Local storage", fmt.Sprintf("%s (%gh per day)",
			v.settings.General.DBFile, v.settings.General.DailyHours)
	case SectionTheme:
		return "Theme", v.settings.General.Theme.Description()
	case SectionPassword:
		if v.hasSecret {
			return "Password", v.styles.Success.Render("[stored]")
		}
		return "Password", v.styles.Warning.Render("[not stored]")
	case SectionOverview:
	}
	return "", ""
}

func orNotSet(s string) string {
	if s == "" {
		return "Not Set"
	}
	return s
}

func indicator(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func (v *View) renderForm(title string, fields ...*input.Field) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")
	for _, f := range fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderThemeSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Theme"))
	b.WriteString("\n\n")

	for i, theme := range domain.AllThemes() {
		line := fmt.Sprintf("%s%s", indicator(i == v.selected), theme.Description())
		if theme == v.settings.General.Theme {
			line += " (current)"
		}
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[enter] edit  [j/k] navigate  [esc] back")
	case SectionTheme:
		return v.styles.Help.Render("[enter] select  [j/k] navigate  [esc] cancel")
	case SectionRemote, SectionLocal, SectionPassword:
	}
	return v.styles.Help.Render("[enter] save  [tab] next field  [esc] cancel")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, in := range []*input.Field{v.accountInput, v.employeeIDInput, v.dbFileInput, v.dailyHoursInput, v.passwordInput} {
		in.SetWidth(width)
	}
}

// Reset returns to the overview.
func (v *View) Reset() {
	v.leaveSection()
	v.selected = 0
	v.err = nil
	v.notice = ""
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
