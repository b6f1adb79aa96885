package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/views/day"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/views/password"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles shared by every view.
	styles *styles.Styles

	keymap *keymap.KeyMap
	help   help.Model

	// prompter answers secret prompts of running submissions.
	prompter *Prompter

	dayView      *day.View
	editorView   *editor.View
	searchView   *search.View
	settingsView *settings.View
	passwordView *password.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// watchStarted carries the change channel of the configuration watcher.
type watchStarted struct {
	changes <-chan struct{}
	err     error
}

// NewApp creates a new TUI application with the given ports.
// When credentials are available the app becomes their prompter.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	prompter := NewPrompter()
	if ports.Credentials != nil {
		ports.Credentials.SetPrompter(prompter)
	}

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         help.New(),
		prompter:     prompter,
		dayView:      day.NewView(s, ports.TimeCard, ports.Submission),
		editorView:   editor.NewView(s, ports.TimeCard),
		searchView:   search.NewView(s, km, ports.TimeCard),
		settingsView: settings.NewView(s, ports.Settings, ports.Credentials),
		passwordView: password.NewView(s),
		currentView:  messages.ViewDay,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.dayView.WithContext(ctx)
	a.editorView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("timecard"),
		a.loadSettings(),
		a.dayView.Init(),
		a.prompter.Wait(),
		a.startWatcher(),
	)
}

// loadSettings reads the settings that drive theme and daily target.
func (a *App) loadSettings() tea.Cmd {
	return func() tea.Msg {
		settings, err := a.ports.Settings.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (a *App) startWatcher() tea.Cmd {
	if a.ports.Watcher == nil {
		return nil
	}
	return func() tea.Msg {
		changes, err := a.ports.Watcher.Watch(a.ctx)
		return watchStarted{changes: changes, err: err}
	}
}

// waitForChange delivers the next configuration change. It returns nil
// once the watcher stops.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.ConfigChanged{}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		return a, a.forward(msg)

	case watchStarted:
		if msg.err != nil {
			logger.Warn("config watcher unavailable: %v", msg.err)
			return a, nil
		}
		a.dayView.Status().SetInfo("Watching configuration")
		return a, waitForChange(msg.changes)

	case messages.ConfigChanged:
		logger.Debug("configuration changed, reloading settings")
		return a, a.loadSettings()

	case messages.SettingsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			logger.Error("load settings: %v", msg.Err)
		} else if msg.Settings != nil {
			a.styles.Apply(styles.ForTheme(msg.Settings.General.Theme))
			a.dayView.SetTarget(msg.Settings.General.DailyHours)
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		return a, tea.Batch(cmd, a.loadSettings())

	case messages.PasswordSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.PasswordRequested:
		logger.Info("password requested for %s", msg.Account)
		a.currentView = messages.ViewPassword
		return a, tea.Batch(a.passwordView.Request(msg), a.prompter.Wait())

	case messages.EditRequested:
		a.currentView = messages.ViewEditor
		return a, a.editorView.Edit(msg.Date, msg.Entry)

	case messages.EntrySaved:
		a.editorView, cmd = a.editorView.Update(msg)
		var dayCmd tea.Cmd
		a.dayView, dayCmd = a.dayView.Update(msg)
		return a, tea.Batch(cmd, dayCmd)

	case messages.DaySelected, messages.DayLoaded, messages.EntryRemoved,
		messages.DefaultsAdded, messages.EntryPasted, messages.ClipboardChanged,
		messages.SubmissionStarted, messages.SubmissionProgress, messages.SubmissionFinished:
		a.dayView, cmd = a.dayView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewDay:
			return a, a.dayView.Init()
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewEditor:
			return a, a.editorView.Init()
		case messages.ViewPassword:
			a.passwordView.Reset()
			return a, a.passwordView.Init()
		case messages.ViewHelp:
			// Help is rendered from the key map
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		if msg.Err != nil {
			logger.Error("%v", msg.Err)
		}
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
			return a, cmd
		}
		a.dayView.Status().SetError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, a.quit()
	}

	// Forward other messages to active view
	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewDay:
		a.dayView, cmd = a.dayView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewPassword:
		a.passwordView, cmd = a.passwordView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch {
			case keymap.Matches(k.String(), a.keymap.Back), keymap.Matches(k.String(), a.keymap.Help):
				a.currentView = messages.ViewDay
			case keymap.Matches(k.String(), a.keymap.Quit):
				return a.quit()
			}
		}
	}
	return cmd
}

// quit stops the prompter so a waiting submission fails instead of
// blocking, then ends the program.
func (a *App) quit() tea.Cmd {
	a.prompter.Close()
	return tea.Quit
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDay:
		return a.dayView.View()
	case messages.ViewEditor:
		return a.editorView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewPassword:
		return a.passwordView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.dayView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.prompter.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Styles returns the styles shared by the views.
func (a *App) Styles() *styles.Styles {
	return a.styles
}

// SetDimensions sets the terminal dimensions of the app and its views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.dayView.SetDimensions(width, height)
	a.editorView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.passwordView.SetDimensions(width, height)
}
