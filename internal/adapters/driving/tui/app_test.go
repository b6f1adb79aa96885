package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// fakeWatcher is a driven.ConfigWatcher backed by a channel.
type fakeWatcher struct {
	changes chan struct{}
	err     error
}

func (w *fakeWatcher) Watch(_ context.Context) (<-chan struct{}, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.changes, nil
}

// Ensure fakeWatcher implements the interface.
var _ driven.ConfigWatcher = (*fakeWatcher)(nil)

func newTestApp(t *testing.T) (*App, *Ports) {
	t.Helper()
	ports := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, ports
}

func update(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts(t))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewDay, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := newTestPorts(t)
	ports.Submission = nil

	app, err := NewApp(ports)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSubmissionService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts(t))
	require.NoError(t, err)

	cmd := update(app, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
}

func TestApp_CtrlC_Quits(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(app, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(app, messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_DayView_QKeyQuits(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	quit := update(app, cmd())

	require.NotNil(t, quit)
	assert.Equal(t, tea.QuitMsg{}, quit())
}

func TestApp_DayLoaded_RendersDay(t *testing.T) {
	app, _ := newTestApp(t)

	update(app, app.dayView.Init()())

	out := app.View()
	assert.Contains(t, out, domain.Day(time.Now()).Format("Mon, Jan 02 2006"))
}

func TestApp_ViewChanged_Search(t *testing.T) {
	app, _ := newTestApp(t)

	update(app, messages.ViewChanged{View: messages.ViewSearch})

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Contains(t, app.View(), "Search")
}

func TestApp_ViewChanged_Settings(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(app, messages.ViewChanged{View: messages.ViewSettings})
	require.NotNil(t, cmd)
	update(app, cmd())

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), "Remote account")
}

func TestApp_Help(t *testing.T) {
	app, _ := newTestApp(t)

	update(app, messages.ViewChanged{View: messages.ViewHelp})

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	out := app.View()
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "submit")

	update(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewDay, app.CurrentView())
}

func TestApp_EditRequested_OpensEditor(t *testing.T) {
	app, _ := newTestApp(t)
	date := domain.Day(time.Now())

	update(app, messages.EditRequested{Date: date})

	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.Nil(t, app.editorView.Editing())

	cmd := update(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDay}, cmd())
}

func TestApp_EntrySaved_ReloadsDay(t *testing.T) {
	app, ports := newTestApp(t)
	date := domain.Day(time.Now())
	saved, err := ports.TimeCard.Append(context.Background(), date, domain.Entry{
		Workorder:   "123456",
		Phase:       "01",
		Hours:       2,
		Description: "Boiler repair",
		Action:      domain.ActionWorkComplete,
		TimeCode:    domain.TimeCodeRegular,
	})
	require.NoError(t, err)
	update(app, messages.EditRequested{Date: date})

	cmd := update(app, messages.EntrySaved{Entry: saved})
	require.NotNil(t, cmd)
	for _, msg := range cmd().(tea.BatchMsg) {
		if msg != nil {
			update(app, msg())
		}
	}

	assert.Equal(t, messages.ViewDay, app.CurrentView())
	assert.Equal(t, 1, app.dayView.Card().Len())
}

func TestApp_SettingsLoaded_AppliesTheme(t *testing.T) {
	app, ports := newTestApp(t)
	require.NoError(t, ports.Settings.SetTheme(domain.ThemeMonochrome))

	update(app, app.loadSettings()())

	assert.Equal(t, domain.ThemeMonochrome, app.Styles().Theme().Name)
	assert.Same(t, app.styles, app.Styles())
}

func TestApp_SettingsLoaded_Error(t *testing.T) {
	app, _ := newTestApp(t)

	update(app, messages.SettingsLoaded{Err: errors.New("broken file")})

	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "broken file")
}

func TestApp_SettingsSaved_ReloadsSettings(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(app, messages.SettingsSaved{})

	assert.NotNil(t, cmd)
}

func TestApp_ConfigChanged_ReloadsSettings(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := update(app, messages.ConfigChanged{})

	require.NotNil(t, cmd)
	loaded, ok := cmd().(messages.SettingsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.NotNil(t, loaded.Settings)
}

func TestApp_Watcher(t *testing.T) {
	ports := newTestPorts(t)
	watcher := &fakeWatcher{changes: make(chan struct{}, 1)}
	ports.Watcher = watcher
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	started := app.startWatcher()
	require.NotNil(t, started)
	wait := update(app, started())
	require.NotNil(t, wait)

	watcher.changes <- struct{}{}
	assert.Equal(t, messages.ConfigChanged{}, wait())

	close(watcher.changes)
	assert.Nil(t, wait())
}

func TestApp_Watcher_Unavailable(t *testing.T) {
	ports := newTestPorts(t)
	ports.Watcher = &fakeWatcher{err: errors.New("no inotify")}
	app, err := NewApp(ports)
	require.NoError(t, err)

	cmd := update(app, app.startWatcher()())

	assert.Nil(t, cmd)
}

func TestApp_Watcher_None(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Nil(t, app.startWatcher())
}

func TestApp_ErrorOccurred_ShownOnDay(t *testing.T) {
	app, _ := newTestApp(t)

	update(app, messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Equal(t, status.StateError, app.dayView.Status().State())
	assert.Contains(t, app.dayView.Status().Message(), "boom")
}

func TestApp_PasswordPrompt(t *testing.T) {
	app, ports := newTestApp(t)

	type result struct {
		secret string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		secret, err := ports.Credentials.Secret(context.Background(), "jdoe")
		done <- result{secret: secret, err: err}
	}()

	req := app.prompter.Wait()()
	require.IsType(t, messages.PasswordRequested{}, req)
	update(app, req)
	assert.Equal(t, messages.ViewPassword, app.CurrentView())
	assert.Contains(t, app.View(), "jdoe")

	for _, r := range "hunter2" {
		update(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	cmd := update(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	update(app, cmd())
	assert.Equal(t, messages.ViewDay, app.CurrentView())

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, "hunter2", r.secret)
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not return")
	}
	ok, err := ports.Credentials.HasSecret("jdoe")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApp_Quit_ClosesPrompter(t *testing.T) {
	app, _ := newTestApp(t)

	update(app, messages.Quit{})

	_, err := app.prompter.PromptSecret(context.Background(), "jdoe")
	assert.ErrorIs(t, err, domain.ErrPromptUnavailable)
}
