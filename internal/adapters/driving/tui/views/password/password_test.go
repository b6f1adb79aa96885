package password

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

type answer struct {
	secret string
	err    error
	calls  int
}

func (a *answer) reply(secret string, err error) {
	a.secret = secret
	a.err = err
	a.calls++
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.False(t, v.Pending())
	assert.Nil(t, v.Init())
	assert.Contains(t, v.View(), "No password requested.")
}

func TestView_Request(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	a := &answer{}

	v.Request(messages.PasswordRequested{Account: "jdoe", Reply: a.reply})

	assert.True(t, v.Pending())
	assert.Equal(t, "jdoe", v.Account())
	assert.Contains(t, v.View(), "Enter the password for jdoe.")
}

func TestView_Enter_Replies(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	a := &answer{}
	v.Request(messages.PasswordRequested{Account: "jdoe", Reply: a.reply})

	typeText(v, "hunter2")
	assert.NotContains(t, v.View(), "hunter2")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDay}, cmd())
	assert.Equal(t, "hunter2", a.secret)
	require.NoError(t, a.err)
	assert.Equal(t, 1, a.calls)
	assert.False(t, v.Pending())
}

func TestView_Enter_EmptyShowsError(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	a := &answer{}
	v.Request(messages.PasswordRequested{Account: "jdoe", Reply: a.reply})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), ErrEmptyPassword)
	assert.Equal(t, 0, a.calls)
	assert.True(t, v.Pending())
	assert.Contains(t, v.View(), "password is empty")
}

func TestView_Esc_Cancels(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	a := &answer{}
	v.Request(messages.PasswordRequested{Account: "jdoe", Reply: a.reply})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDay}, cmd())
	assert.ErrorIs(t, a.err, domain.ErrPromptUnavailable)
	assert.Empty(t, a.secret)
	assert.False(t, v.Pending())
}

func TestView_Request_SupersedesPending(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	first := &answer{}
	second := &answer{}
	v.Request(messages.PasswordRequested{Account: "jdoe", Reply: first.reply})

	v.Update(messages.PasswordRequested{Account: "asmith", Reply: second.reply})

	assert.ErrorIs(t, first.err, domain.ErrPromptUnavailable)
	assert.Equal(t, 0, second.calls)
	assert.Equal(t, "asmith", v.Account())
}

func TestView_Reset_KeepsRequest(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	v.Request(messages.PasswordRequested{Account: "jdoe"})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, v.Err())

	v.Reset()

	assert.NoError(t, v.Err())
	assert.True(t, v.Pending())
}
