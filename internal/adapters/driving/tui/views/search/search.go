// Package search provides the entry search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// Actions offered on a selected entry.
const (
	ActionCopy   = "Copy to clipboard"
	ActionGoTo   = "Go to day"
	ActionCancel = "Cancel"
)

// ActionMenu represents a simple action selection overlay.
type ActionMenu struct {
	actions  []string
	selected int
	visible  bool
	entry    *domain.Entry
}

// View represents the search view with the query form, results and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	inputs    []*input.Field
	list      *list.EntryList
	statusbar *status.Bar

	timeCard driving.TimeCardService
	ctx      context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = form mode (typing), false = results mode (navigating)
	focus      int  // focused form field
	actionMenu *ActionMenu
}

// Form fields, in focus order.
const (
	fieldText = iota
	fieldFrom
	fieldTo
)

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, timeCard driving.TimeCardService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	entries := list.NewEntryList(s, true)
	entries.SetEmptyText("No matching entries")

	v := &View{
		styles: s,
		keymap: km,
		inputs: []*input.Field{
			input.NewField(s, "Description", "text to find"),
			input.NewField(s, "From", domain.DateLayout),
			input.NewField(s, "To", domain.DateLayout),
		},
		list:       entries,
		statusbar:  status.NewBar(s, km),
		timeCard:   timeCard,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.focusField(fieldText)
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.inputs[fieldText].Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil && v.actionMenu.visible {
		return v.handleActionMenuKey(msg)
	}

	// Esc always goes back to the day
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDay}
		}
	}

	if v.focusInput {
		return v.handleFormKey(msg)
	}

	// Results mode: handle Enter to open action menu
	if msg.Type == tea.KeyEnter {
		if e := v.list.SelectedEntry(); e != nil {
			v.actionMenu = &ActionMenu{
				actions: []string{ActionCopy, ActionGoTo, ActionCancel},
				visible: true,
				entry:   e,
			}
		}
		return v, nil
	}

	switch msg.String() {
	case "y":
		return v.executeAction(ActionCopy, v.list.SelectedEntry())
	case "n", "/":
		// New search: keep the form values and focus it
		v.focusInput = true
		return v, v.focusField(fieldText)
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// handleFormKey handles keys while the query form has focus.
func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		query, err := v.query()
		if err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		v.statusbar.SetInfo("Searching...")
		return v, v.performSearch(query)
	case tea.KeyTab, tea.KeyDown:
		return v, v.focusField((v.focus + 1) % len(v.inputs))
	case tea.KeyShiftTab, tea.KeyUp:
		return v, v.focusField((v.focus + len(v.inputs) - 1) % len(v.inputs))
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *View) focusField(field int) tea.Cmd {
	v.focus = field
	var cmd tea.Cmd
	for i, in := range v.inputs {
		if i == field {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// query builds the find query from the form. Empty dates keep the
// service defaults.
func (v *View) query() (driving.FindQuery, error) {
	q := driving.FindQuery{Text: strings.TrimSpace(v.inputs[fieldText].Value())}

	var err error
	if q.From, err = parseOptionalDay(v.inputs[fieldFrom].Value()); err != nil {
		return q, fmt.Errorf("from: %w", err)
	}
	if q.To, err = parseOptionalDay(v.inputs[fieldTo].Value()); err != nil {
		return q, fmt.Errorf("to: %w", err)
	}
	return q, nil
}

func parseOptionalDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseDay(s)
}

// handleActionMenuKey processes keyboard input when action menu is visible.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case "down", "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	case "enter":
		action := v.actionMenu.actions[v.actionMenu.selected]
		e := v.actionMenu.entry
		v.actionMenu = nil
		return v.executeAction(action, e)
	case "esc":
		v.actionMenu = nil
	}
	return v, nil
}

// executeAction performs the selected action on an entry.
func (v *View) executeAction(action string, e *domain.Entry) (*View, tea.Cmd) {
	if e == nil {
		return v, nil
	}

	switch action {
	case ActionCopy:
		v.statusbar.SetInfo(fmt.Sprintf("Copied %s %s", e.Workorder, e.Description))
		clip := domain.NewClipboard(*e)
		return v, func() tea.Msg {
			return messages.ClipboardChanged{Clipboard: clip}
		}
	case ActionGoTo:
		date := e.WorkDate
		return v, tea.Sequence(
			func() tea.Msg { return messages.DaySelected{Date: date} },
			func() tea.Msg { return messages.ViewChanged{View: messages.ViewDay} },
		)
	case ActionCancel:
		// Do nothing, menu is already closed
	}

	return v, nil
}

// performSearch returns a command that runs query.
func (v *View) performSearch(query driving.FindQuery) tea.Cmd {
	return func() tea.Msg {
		if v.timeCard == nil {
			return messages.ErrorOccurred{Err: ErrNoTimeCardService}
		}

		entries, err := v.timeCard.Find(v.ctx, query)
		if err != nil {
			return messages.SearchCompleted{Err: err}
		}
		return messages.SearchCompleted{Entries: entries}
	}
}

// handleSearchCompleted processes search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetEntries(msg.Entries)
	v.list.SetSelected(0)

	var hours float64
	for _, e := range msg.Entries {
		hours += e.Hours
	}
	v.statusbar.SetInfo(fmt.Sprintf("%d entries, %gh", len(msg.Entries), hours))

	// Switch to results mode after a successful search
	v.focusInput = false
	for _, in := range v.inputs {
		in.Blur()
	}
}

// View renders the search view.
func (v *View) View() string {
	sections := make([]string, 0, 12)

	sections = append(sections, v.styles.Title.Render("Find entries"), "")
	for _, in := range v.inputs {
		sections = append(sections, in.View())
	}
	sections = append(sections, "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	if v.actionMenu != nil && v.actionMenu.visible {
		sections = append(sections, "", v.renderActionMenu())
	}

	help := "[enter] search  [tab] next field  [esc] back"
	if !v.focusInput {
		help = "[enter] actions  [y] copy  [n] new search  [esc] back"
	}
	sections = append(sections, "", v.styles.Help.Render(help), v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	if v.actionMenu == nil {
		return ""
	}

	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	for _, in := range v.inputs {
		in.SetWidth(width)
	}
	// Reserve space for header, form, help and status
	v.list.SetDimensions(width, height-14)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}

// SetQuery fills the form.
func (v *View) SetQuery(text, from, to string) {
	v.inputs[fieldText].SetValue(text)
	v.inputs[fieldFrom].SetValue(from)
	v.inputs[fieldTo].SetValue(to)
}

// Results returns the entries found.
func (v *View) Results() []domain.Entry {
	return v.list.Entries()
}

// SelectedIndex returns the index of the selected entry.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to form mode. The form values are kept so a
// search can be refined.
func (v *View) Reset() {
	v.focusInput = true
	v.focusField(fieldText)
	v.actionMenu = nil
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the form has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
