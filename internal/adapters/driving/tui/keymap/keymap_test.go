package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_DayBindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"add", km.Add, []string{"a", "+"}},
		{"edit", km.Edit, []string{"enter"}},
		{"remove", km.Remove, []string{"d", "delete"}},
		{"defaults", km.Defaults, []string{"o"}},
		{"copy", km.Copy, []string{"y"}},
		{"paste", km.Paste, []string{"p"}},
		{"submit", km.Submit, []string{"s"}},
		{"prev day", km.PrevDay, []string{"["}},
		{"next day", km.NextDay, []string{"]"}},
		{"search", km.Search, []string{"/"}},
		{"settings", km.Settings, []string{","}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.True(t, Matches(k, tt.binding), "key %q", k)
			}
		})
	}
}

func TestDefaultKeyMap_UpDown(t *testing.T) {
	km := DefaultKeyMap()

	assert.ElementsMatch(t, []string{"up", "k"}, km.Up.Keys())
	assert.ElementsMatch(t, []string{"down", "j"}, km.Down.Keys())
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 2)
	assert.Equal(t, km.Quit.Keys(), help[0].Keys())
	assert.Equal(t, km.Help.Keys(), help[1].Keys())
}

func TestDayHelp_EndsWithQuit(t *testing.T) {
	km := DefaultKeyMap()

	help := km.DayHelp()

	require.NotEmpty(t, help)
	assert.Equal(t, km.Quit.Keys(), help[len(help)-1].Keys())
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.FullHelp()

	require.Len(t, help, 4)
	for _, group := range help {
		assert.NotEmpty(t, group)
	}
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("esc", km.Back))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Back))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			assert.NotEmpty(t, b.Help().Key)
			assert.NotEmpty(t, b.Help().Desc)
		}
	}
}
