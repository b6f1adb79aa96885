package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
)

func TestNewField(t *testing.T) {
	field := NewField(styles.DefaultStyles(), "Workorder", "000000")

	require.NotNil(t, field)
	assert.Equal(t, "", field.Value())
	assert.Equal(t, "Workorder", field.Label())
	assert.False(t, field.Focused())
}

func TestNewField_NilStyles(t *testing.T) {
	field := NewField(nil, "Phase", "")

	require.NotNil(t, field)
	assert.NotNil(t, field.styles)
}

func TestField_Init(t *testing.T) {
	field := NewField(nil, "Hours", "")

	assert.NotNil(t, field.Init())
}

func TestField_Update_TypesWhenFocused(t *testing.T) {
	field := NewField(nil, "Description", "")
	field.Focus()

	updated, _ := field.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, field, updated)
	assert.Equal(t, "a", field.Value())
}

func TestField_Update_IgnoresKeysWhenBlurred(t *testing.T) {
	field := NewField(nil, "Description", "")

	field.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, "", field.Value())
}

func TestField_View(t *testing.T) {
	field := NewField(nil, "Workorder", "")
	field.SetValue("000020")

	view := field.View()

	assert.Contains(t, view, "Workorder:")
	assert.Contains(t, view, "000020")
}

func TestNewSecretField_MasksValue(t *testing.T) {
	field := NewSecretField(nil, "Password")
	field.SetValue("hunter2")

	assert.Equal(t, "hunter2", field.Value())
	assert.NotContains(t, field.View(), "hunter2")
}

func TestField_FocusAndBlur(t *testing.T) {
	field := NewField(nil, "Phase", "")

	field.Focus()
	assert.True(t, field.Focused())

	field.Blur()
	assert.False(t, field.Focused())
}

func TestField_SetCharLimit(t *testing.T) {
	field := NewField(nil, "Phase", "")
	field.SetCharLimit(3)
	field.Focus()

	for _, r := range "0390" {
		field.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "039", field.Value())
}

func TestField_SetWidth(t *testing.T) {
	field := NewField(nil, "Phase", "")

	field.SetWidth(100)
	assert.Equal(t, 100, field.Width())
	assert.Equal(t, 80, field.textinput.Width)

	field.SetWidth(10)
	assert.Equal(t, 20, field.textinput.Width)
}

func TestField_Reset(t *testing.T) {
	field := NewField(nil, "Phase", "")
	field.SetValue("039")

	field.Reset()

	assert.Equal(t, "", field.Value())
}
