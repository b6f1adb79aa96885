// Package editor provides the entry editor view for the TUI.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// Field identifies a form field, in focus order.
type Field int

const (
	FieldWorkorder Field = iota
	FieldPhase
	FieldHours
	FieldAction
	FieldDescription
	FieldTimeCode
	fieldCount
)

// View edits one entry or creates a new one.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	timeCard driving.TimeCardService
	ctx      context.Context

	date     time.Time
	original *domain.Entry

	inputs   map[Field]*input.Field
	actions  []domain.Action
	codes    []domain.TimeCode
	action   int
	timeCode int
	focus    Field

	saving bool
	err    error
	width  int
	height int
	ready  bool
}

// NewView creates a new editor view.
func NewView(s *styles.Styles, timeCard driving.TimeCardService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	workorder := input.NewField(s, "Workorder", "000000")
	workorder.SetCharLimit(domain.WorkorderWidth)
	phase := input.NewField(s, "Phase", "000")
	phase.SetCharLimit(domain.PhaseWidth)

	v := &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		timeCard: timeCard,
		ctx:      context.Background(),
		inputs: map[Field]*input.Field{
			FieldWorkorder:   workorder,
			FieldPhase:       phase,
			FieldHours:       input.NewField(s, "Hours", "0.5"),
			FieldDescription: input.NewField(s, "Description", ""),
		},
		// Leave entries may go without an action.
		actions: append(domain.AllActions(), ""),
		codes:   domain.AllTimeCodes(),
	}
	v.Reset()
	return v
}

// WithContext sets the context of service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return v.setFocus(FieldWorkorder)
}

// Edit loads entry into the form. A nil entry starts a new line item on date.
func (v *View) Edit(date time.Time, entry *domain.Entry) tea.Cmd {
	v.Reset()
	v.date = domain.Day(date)
	if entry != nil {
		e := *entry
		v.original = &e
		v.inputs[FieldWorkorder].SetValue(e.Workorder)
		v.inputs[FieldPhase].SetValue(e.Phase)
		v.inputs[FieldHours].SetValue(strconv.FormatFloat(e.Hours, 'f', -1, 64))
		v.inputs[FieldDescription].SetValue(e.Description)
		v.action = indexOf(v.actions, e.Action)
		v.timeCode = indexOf(v.codes, e.TimeCode)
	}
	return v.Init()
}

func indexOf[T comparable](values []T, want T) int {
	for i, value := range values {
		if value == want {
			return i
		}
	}
	return 0
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.EntrySaved:
		v.saving = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDay}
		}
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDay}
		}
	case keymap.Matches(k, v.keymap.Save):
		return v, v.save()
	case keymap.Matches(k, v.keymap.NextField):
		return v, v.setFocus((v.focus + 1) % fieldCount)
	case keymap.Matches(k, v.keymap.PrevField):
		return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)
	}

	switch v.focus {
	case FieldAction:
		v.action = cycle(v.action, len(v.actions), k)
		return v, nil
	case FieldTimeCode:
		v.timeCode = cycle(v.timeCode, len(v.codes), k)
		return v, nil
	case FieldWorkorder, FieldPhase, FieldHours, FieldDescription, fieldCount:
	}

	field, ok := v.inputs[v.focus]
	if !ok {
		return v, nil
	}
	_, cmd := field.Update(msg)
	return v, cmd
}

// cycle moves a choice index with left/right, wrapping around.
func cycle(index, n int, key string) int {
	switch key {
	case "right", "l", " ":
		return (index + 1) % n
	case "left", "h":
		return (index + n - 1) % n
	}
	return index
}

func (v *View) setFocus(field Field) tea.Cmd {
	v.focus = field
	var cmd tea.Cmd
	for f, in := range v.inputs {
		if f == field {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// Entry returns the entry the form currently describes.
func (v *View) Entry() (domain.Entry, error) {
	hoursText := strings.TrimSpace(v.inputs[FieldHours].Value())
	hours := 0.0
	if hoursText != "" {
		parsed, err := strconv.ParseFloat(hoursText, 64)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("%w: hours %q is not a number", domain.ErrInvalidInput, hoursText)
		}
		hours = parsed
	}

	e := domain.Entry{
		WorkDate:    v.date,
		Workorder:   v.inputs[FieldWorkorder].Value(),
		Phase:       v.inputs[FieldPhase].Value(),
		Hours:       hours,
		Description: v.inputs[FieldDescription].Value(),
		Action:      v.actions[v.action],
		TimeCode:    v.codes[v.timeCode],
	}
	if v.original != nil {
		e.WorkDate = v.original.WorkDate
		e.LineItem = v.original.LineItem
	}
	return e, nil
}

// save returns a command that persists the form.
func (v *View) save() tea.Cmd {
	e, err := v.Entry()
	if err != nil {
		v.err = err
		return nil
	}
	if v.saving {
		return nil
	}
	v.saving = true
	editing := v.original != nil
	date := v.date

	return func() tea.Msg {
		if v.timeCard == nil {
			return messages.EntrySaved{Err: errors.New("time card service not available")}
		}
		if editing {
			if err := v.timeCard.Update(v.ctx, e); err != nil {
				return messages.EntrySaved{Err: err}
			}
			return messages.EntrySaved{Entry: &e}
		}
		saved, err := v.timeCard.Append(v.ctx, date, e)
		return messages.EntrySaved{Entry: saved, Err: err}
	}
}

// View renders the editor.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("New entry on %s", v.date.Format(domain.DateLayout))
	if v.original != nil {
		title = fmt.Sprintf("Edit line %d on %s", v.original.LineItem, v.date.Format(domain.DateLayout))
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	for f := FieldWorkorder; f < fieldCount; f++ {
		switch f {
		case FieldAction:
			b.WriteString(v.renderChoice("Action", actionLabel(v.actions[v.action]), f))
		case FieldTimeCode:
			b.WriteString(v.renderChoice("Time code", v.codes[v.timeCode].String(), f))
		case FieldWorkorder, FieldPhase, FieldHours, FieldDescription, fieldCount:
			b.WriteString(v.inputs[f].View())
		}
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[tab] next  [shift+tab] prev  [←/→] choose  [enter] save  [esc] cancel"))

	return b.String()
}

func actionLabel(a domain.Action) string {
	if a == "" {
		return "(none)"
	}
	return a.String()
}

func (v *View) renderChoice(label, value string, f Field) string {
	labelStyle := v.styles.Muted
	valueStyle := v.styles.Normal
	if v.focus == f {
		labelStyle = v.styles.Title
		valueStyle = v.styles.Selected
	}
	return labelStyle.Width(14).Render(label+":") + " " + valueStyle.Render("< "+value+" >")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, in := range v.inputs {
		in.SetWidth(width)
	}
}

// Reset clears the form.
func (v *View) Reset() {
	v.original = nil
	v.err = nil
	v.saving = false
	for _, in := range v.inputs {
		in.Reset()
	}
	v.action = indexOf(v.actions, domain.ActionWorkComplete)
	v.timeCode = indexOf(v.codes, domain.TimeCodeRegular)
	v.setFocus(FieldWorkorder)
}

// Focus returns the focused field.
func (v *View) Focus() Field {
	return v.focus
}

// Editing returns the entry being edited, or nil for a new entry.
func (v *View) Editing() *domain.Entry {
	return v.original
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
