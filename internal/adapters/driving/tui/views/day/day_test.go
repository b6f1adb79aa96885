package day

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/formdriver/dryrun"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/timecard-cli/internal/core/services"
)

var testDate = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// newTestView returns a view on testDate over in-memory services.
// Submissions run against the recording driver.
func newTestView(t *testing.T) (*View, driving.TimeCardService) {
	t.Helper()
	settings := services.NewSettingsService(memory.NewConfigStore())
	require.NoError(t, settings.SetRemote("jdoe", "12345"))
	require.NoError(t, settings.Set("remote.settle_millis", "0"))

	secrets := memory.NewSecretStore()
	require.NoError(t, secrets.Set("jdoe", "hunter2"))
	credentials := services.NewCredentialsService(secrets, nil)

	entries := memory.NewEntryStore()
	timeCard := services.NewTimeCardService(entries, settings)
	submission := services.NewSubmissionService(entries, settings, credentials, dryrun.NewFactory(), nil)
	submission.PollInterval = time.Millisecond

	v := NewView(nil, timeCard, submission)
	v.date = testDate
	v.SetDimensions(120, 30)
	return v, timeCard
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and feeds the resulting message back into the view.
func press(t *testing.T, v *View, s string) tea.Msg {
	t.Helper()
	_, cmd := v.Update(key(s))
	require.NotNil(t, cmd, "key %q produced no command", s)
	msg := cmd()
	v.Update(msg)
	return msg
}

func load(t *testing.T, v *View) {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func addDefaults(t *testing.T, timeCard driving.TimeCardService) {
	t.Helper()
	_, err := timeCard.AddDefaults(context.Background(), testDate)
	require.NoError(t, err)
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Equal(t, domain.Day(time.Now()), v.Date())
	assert.Equal(t, 8.0, v.target)
	assert.False(t, v.ready)
}

func TestView_Init_NilService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := v.Init()()

	loaded, ok := msg.(messages.DayLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_Init_LoadsDay(t *testing.T) {
	v, timeCard := newTestView(t)
	addDefaults(t, timeCard)

	load(t, v)

	assert.NoError(t, v.Err())
	assert.Equal(t, 2, v.Card().Len())
	assert.Contains(t, v.View(), "LEAD WORK")
	assert.Contains(t, v.View(), "Mon, Mar 04 2024")
}

func TestView_DayLoaded_Error(t *testing.T) {
	v, _ := newTestView(t)

	v.Update(messages.DayLoaded{Err: errors.New("disk on fire")})

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "disk on fire")
}

func TestView_DayLoaded_DropsStaleDate(t *testing.T) {
	v, _ := newTestView(t)
	stale := domain.NewTimeCard(testDate.AddDate(0, 0, -1), []domain.Entry{{Workorder: "000001"}})

	v.Update(messages.DayLoaded{Card: stale})

	assert.Equal(t, 0, v.Card().Len())
}

func TestView_Total_HighlightsMissedTarget(t *testing.T) {
	v, timeCard := newTestView(t)
	addDefaults(t, timeCard)
	load(t, v)

	assert.Contains(t, v.View(), "Total: 4h of 8h")

	v.SetTarget(4)
	assert.Contains(t, v.View(), "Total: 4h")
	assert.NotContains(t, v.View(), "of 4h")
}

func TestView_ChangeDay(t *testing.T) {
	v, _ := newTestView(t)

	press(t, v, "]")
	assert.Equal(t, testDate.AddDate(0, 0, 1), v.Date())

	press(t, v, "[")
	press(t, v, "[")
	assert.Equal(t, testDate.AddDate(0, 0, -1), v.Date())
	assert.Equal(t, testDate.AddDate(0, 0, -1), v.Card().Date)
}

func TestView_Today(t *testing.T) {
	v, _ := newTestView(t)
	v.now = func() time.Time { return time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC) }

	press(t, v, "t")

	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), v.Date())
}

func TestView_DaySelected(t *testing.T) {
	v, _ := newTestView(t)
	other := testDate.AddDate(0, 1, 0)

	_, cmd := v.Update(messages.DaySelected{Date: other})

	require.NotNil(t, cmd)
	assert.Equal(t, other, v.Date())
}

func TestView_Add_RequestsEditor(t *testing.T) {
	v, _ := newTestView(t)

	for _, k := range []string{"a", "+"} {
		_, cmd := v.Update(key(k))
		require.NotNil(t, cmd)
		req, ok := cmd().(messages.EditRequested)
		require.True(t, ok)
		assert.Equal(t, testDate, req.Date)
		assert.Nil(t, req.Entry)
	}
}

func TestView_Edit_RequestsEditorWithSelection(t *testing.T) {
	v, timeCard := newTestView(t)
	addDefaults(t, timeCard)
	load(t, v)

	v.Update(key("down"))
	_, cmd := v.Update(key("enter"))

	require.NotNil(t, cmd)
	req, ok := cmd().(messages.EditRequested)
	require.True(t, ok)
	require.NotNil(t, req.Entry)
	assert.Equal(t, 1, req.Entry.LineItem)
	assert.Equal(t, "LEAD WORK", req.Entry.Description)
}

func TestView_Edit_EmptyDay(t *testing.T) {
	v, _ := newTestView(t)
	load(t, v)

	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
}

func TestView_AddDefaults(t *testing.T) {
	v, _ := newTestView(t)
	load(t, v)

	msg := press(t, v, "o")

	added, ok := msg.(messages.DefaultsAdded)
	require.True(t, ok)
	require.NoError(t, added.Err)
	assert.Equal(t, 2, v.Card().Len())
	assert.Equal(t, 4.0, v.Card().Hours())
}

func TestView_Remove(t *testing.T) {
	v, timeCard := newTestView(t)
	addDefaults(t, timeCard)
	load(t, v)

	_, cmd := v.Update(key("d"))
	require.NotNil(t, cmd)
	removed, ok := cmd().(messages.EntryRemoved)
	require.True(t, ok)
	require.NoError(t, removed.Err)
	assert.Equal(t, 0, removed.LineItem)

	_, cmd = v.Update(removed)
	require.NotNil(t, cmd)
	v.Update(cmd())

	require.Equal(t, 1, v.Card().Len())
	assert.Equal(t, "LEAD WORK", v.Card().Entries[0].Description)
	assert.Equal(t, 0, v.Card().Entries[0].LineItem)
	assert.Contains(t, v.Status().Message(), "Removed line 0")
}

func TestView_CopyPaste(t *testing.T) {
	v, timeCard := newTestView(t)
	addDefaults(t, timeCard)
	load(t, v)

	msg := press(t, v, "y")
	copied, ok := msg.(messages.ClipboardChanged)
	require.True(t, ok)
	require.NoError(t, copied.Err)
	assert.False(t, v.Clipboard().Empty())
	assert.Contains(t, v.Status().Message(), "Copied 000032")

	press(t, v, "]")
	_, cmd := v.Update(key("p"))
	require.NotNil(t, cmd)
	pasted, ok := cmd().(messages.EntryPasted)
	require.True(t, ok)
	require.NoError(t, pasted.Err)
	assert.Equal(t, 0, pasted.Entry.LineItem)

	_, cmd = v.Update(pasted)
	require.NotNil(t, cmd)
	v.Update(cmd())

	require.Equal(t, 1, v.Card().Len())
	assert.Equal(t, "BREAK", v.Card().Entries[0].Description)
}

func TestView_Paste_EmptyClipboard(t *testing.T) {
	v, _ := newTestView(t)

	_, cmd := v.Update(key("p"))

	assert.Nil(t, cmd)
	assert.Equal(t, "Clipboard is empty", v.Status().Message())
}

func TestView_Submit_EmptyDay(t *testing.T) {
	v, _ := newTestView(t)
	load(t, v)

	msg := press(t, v, "s")

	started, ok := msg.(messages.SubmissionStarted)
	require.True(t, ok)
	assert.ErrorIs(t, started.Err, domain.ErrEmptyTimeCard)
	assert.Equal(t, status.StateError, v.Status().State())
	assert.False(t, v.Submitting())
}

func TestView_Submit_FollowsTask(t *testing.T) {
	v, timeCard := newTestView(t)
	addDefaults(t, timeCard)
	load(t, v)

	_, cmd := v.Update(key("s"))
	require.NotNil(t, cmd)

	var progress []domain.SubmissionEvent
	deadline := time.After(10 * time.Second)
	for cmd != nil {
		select {
		case <-deadline:
			t.Fatal("submission did not finish")
		default:
		}
		msg := cmd()
		if p, ok := msg.(messages.SubmissionProgress); ok {
			progress = append(progress, p.Event)
		}
		_, cmd = v.Update(msg)
	}

	require.NotEmpty(t, progress)
	assert.Equal(t, "Processing 1/2", progress[0].Message)
	assert.Equal(t, domain.EventSucceeded, progress[len(progress)-1].Kind)
	assert.False(t, v.Submitting())
	assert.Equal(t, status.StateDone, v.Status().State())
	assert.Contains(t, v.View(), "Done!")
}

func TestView_SubmissionFinished_WithoutResult(t *testing.T) {
	v, _ := newTestView(t)

	v.Update(messages.SubmissionFinished{Err: context.Canceled})

	assert.Equal(t, status.StateError, v.Status().State())
	assert.Contains(t, v.Status().Message(), "context canceled")
}

func TestView_NavigationKeys(t *testing.T) {
	v, _ := newTestView(t)

	tests := []struct {
		key  string
		want messages.ViewType
	}{
		{"/", messages.ViewSearch},
		{",", messages.ViewSettings},
		{"?", messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := v.Update(key(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_Quit(t *testing.T) {
	v, _ := newTestView(t)

	_, cmd := v.Update(key("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_SetDimensions(t *testing.T) {
	v := NewView(nil, nil, nil)

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.True(t, v.ready)
	assert.Equal(t, 100, v.width)
	assert.Equal(t, 40, v.height)
	assert.Equal(t, 100, v.status.Width())
}
