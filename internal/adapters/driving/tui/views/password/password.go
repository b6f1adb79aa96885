// Package password provides the view that asks for a missing remote
// password during submission.
package password

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

// ErrEmptyPassword is shown when enter is pressed without a value.
var ErrEmptyPassword = errors.New("password is empty")

// View asks for the password of a remote account.
type View struct {
	styles  *styles.Styles
	field   *input.Field
	request *messages.PasswordRequested
	err     error
	width   int
	height  int
}

// NewView creates a new password view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		field:  input.NewSecretField(s, "Password"),
	}
}

// Request stores a pending password request and focuses the input.
// A request still pending is cancelled.
func (v *View) Request(msg messages.PasswordRequested) tea.Cmd {
	if v.request != nil {
		v.reply("", fmt.Errorf("%w: superseded", domain.ErrPromptUnavailable))
	}
	v.request = &msg
	v.err = nil
	v.field.Reset()
	return v.field.Focus()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	if v.request == nil {
		return nil
	}
	return v.field.Focus()
}

// Update handles messages for the password view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case messages.PasswordRequested:
		return v, v.Request(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			v.reply("", fmt.Errorf("%w: cancelled", domain.ErrPromptUnavailable))
			return v, backToDay
		case "enter":
			value := v.field.Value()
			if strings.TrimSpace(value) == "" {
				v.err = ErrEmptyPassword
				return v, nil
			}
			v.reply(value, nil)
			return v, backToDay
		}
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

func backToDay() tea.Msg {
	return messages.ViewChanged{View: messages.ViewDay}
}

// reply answers the pending request once.
func (v *View) reply(secret string, err error) {
	if v.request != nil && v.request.Reply != nil {
		v.request.Reply(secret, err)
	}
	v.request = nil
	v.field.Reset()
	v.field.Blur()
}

// View renders the password view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Password required"))
	b.WriteString("\n\n")

	if v.request == nil {
		b.WriteString(v.styles.Muted.Render("No password requested."))
		return b.String()
	}

	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Enter the password for %s.", v.request.Account)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("It is stored in the system keyring."))
	b.WriteString("\n\n")
	b.WriteString(v.field.View())
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] submit  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.field.SetWidth(width)
}

// Reset clears the error. A pending request is kept.
func (v *View) Reset() {
	v.err = nil
}

// Pending reports whether a request is waiting for an answer.
func (v *View) Pending() bool {
	return v.request != nil
}

// Account returns the account of the pending request.
func (v *View) Account() string {
	if v.request == nil {
		return ""
	}
	return v.request.Account
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
