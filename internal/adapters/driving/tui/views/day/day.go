// Package day provides the time card view of one date.
package day

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// headerLayout renders the date in the view title.
const headerLayout = "Mon, Jan 02 2006"

// errNoTimeCardService is reported when the view has nothing to load from.
var errNoTimeCardService = errors.New("time card service not available")

// View shows the entries of one date and the status of the running submission.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	timeCard   driving.TimeCardService
	submission driving.SubmissionService
	ctx        context.Context

	date      time.Time
	card      domain.TimeCard
	target    float64
	clipboard domain.Clipboard
	task      driving.SubmissionTask

	entries *list.EntryList
	status  *status.Bar
	now     func() time.Time

	width   int
	height  int
	ready   bool
	loading bool
	err     error
}

// NewView creates a new day view showing today.
func NewView(
	s *styles.Styles,
	timeCard driving.TimeCardService,
	submission driving.SubmissionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	entries := list.NewEntryList(s, false)
	entries.SetEmptyText("No entries. Press a to add one or o to add the defaults.")

	return &View{
		styles:     s,
		keymap:     km,
		timeCard:   timeCard,
		submission: submission,
		ctx:        context.Background(),
		date:       domain.Day(time.Now()),
		target:     domain.DefaultAppSettings().General.DailyHours,
		entries:    entries,
		status:     status.NewBar(s, km),
		now:        time.Now,
	}
}

// WithContext sets the context of service calls and submissions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the current date.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadDay()
}

// SetDate switches to date and loads it.
func (v *View) SetDate(date time.Time) tea.Cmd {
	v.date = domain.Day(date)
	v.loading = true
	return v.loadDay()
}

// SetTarget sets the daily hours the total is compared against.
func (v *View) SetTarget(hours float64) {
	v.target = hours
}

// loadDay returns a command that loads the time card of the current date.
func (v *View) loadDay() tea.Cmd {
	date := v.date
	return func() tea.Msg {
		if v.timeCard == nil {
			return messages.DayLoaded{Card: domain.TimeCard{Date: date}, Err: errNoTimeCardService}
		}
		card, err := v.timeCard.Day(v.ctx, date)
		return messages.DayLoaded{Card: card, Err: err}
	}
}

// Update handles messages for the day view.
//
//nolint:gocyclo // central message handler
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DaySelected:
		return v, v.SetDate(msg.Date)

	case messages.DayLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		// A late load of a date that is no longer shown is dropped.
		if !msg.Card.Date.IsZero() && !msg.Card.Date.Equal(v.date) {
			return v, nil
		}
		v.setCard(msg.Card)
		return v, nil

	case messages.EntrySaved:
		if msg.Err != nil {
			return v, nil
		}
		return v, v.loadDay()

	case messages.EntryRemoved:
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.status.SetInfo(fmt.Sprintf("Removed line %d", msg.LineItem))
		return v, v.loadDay()

	case messages.DefaultsAdded:
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.setCard(msg.Card)
		return v, nil

	case messages.ClipboardChanged:
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.clipboard = msg.Clipboard
		if e, ok := msg.Clipboard.Entry(); ok {
			v.status.SetInfo(fmt.Sprintf("Copied %s %s", e.Workorder, e.Description))
		}
		return v, nil

	case messages.EntryPasted:
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.status.SetInfo(fmt.Sprintf("Pasted as line %d", msg.Entry.LineItem))
		return v, v.loadDay()

	case messages.SubmissionStarted:
		if msg.Err != nil {
			v.status.SetError(msg.Err)
			return v, nil
		}
		v.task = msg.Task
		v.status.SetEvent(msg.Task.Status())
		return v, waitForEvent(v.ctx, msg.Task)

	case messages.SubmissionProgress:
		v.status.SetEvent(msg.Event)
		return v, waitForEvent(v.ctx, msg.Task)

	case messages.SubmissionFinished:
		v.task = nil
		if msg.Result.Final.Kind != "" {
			v.status.SetEvent(msg.Result.Final)
		} else {
			v.status.SetError(msg.Err)
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
//
//nolint:gocyclo // one case per binding
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up), keymap.Matches(k, v.keymap.Down):
		v.entries, _ = v.entries.Update(msg)
	case keymap.Matches(k, v.keymap.PrevDay):
		return v, v.SetDate(v.date.AddDate(0, 0, -1))
	case keymap.Matches(k, v.keymap.NextDay):
		return v, v.SetDate(v.date.AddDate(0, 0, 1))
	case keymap.Matches(k, v.keymap.Today):
		return v, v.SetDate(v.now())
	case keymap.Matches(k, v.keymap.Add):
		date := v.date
		return v, func() tea.Msg {
			return messages.EditRequested{Date: date}
		}
	case keymap.Matches(k, v.keymap.Edit):
		if e := v.entries.SelectedEntry(); e != nil {
			return v, func() tea.Msg {
				return messages.EditRequested{Date: e.WorkDate, Entry: e}
			}
		}
	case keymap.Matches(k, v.keymap.Remove):
		if e := v.entries.SelectedEntry(); e != nil {
			return v, v.removeEntry(e.WorkDate, e.LineItem)
		}
	case keymap.Matches(k, v.keymap.Defaults):
		return v, v.addDefaults()
	case keymap.Matches(k, v.keymap.Copy):
		if e := v.entries.SelectedEntry(); e != nil {
			return v, v.copyEntry(e.WorkDate, e.LineItem)
		}
	case keymap.Matches(k, v.keymap.Paste):
		if v.clipboard.Empty() {
			v.status.SetInfo("Clipboard is empty")
			return v, nil
		}
		return v, v.paste()
	case keymap.Matches(k, v.keymap.Submit):
		return v, v.startSubmission()
	case keymap.Matches(k, v.keymap.Search):
		return v, changeView(messages.ViewSearch)
	case keymap.Matches(k, v.keymap.Settings):
		return v, changeView(messages.ViewSettings)
	case keymap.Matches(k, v.keymap.Help):
		return v, changeView(messages.ViewHelp)
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}
	return v, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// removeEntry returns a command that deletes an entry.
func (v *View) removeEntry(date time.Time, lineItem int) tea.Cmd {
	return func() tea.Msg {
		if v.timeCard == nil {
			return messages.EntryRemoved{Date: date, LineItem: lineItem, Err: errNoTimeCardService}
		}
		err := v.timeCard.Delete(v.ctx, date, lineItem)
		return messages.EntryRemoved{Date: date, LineItem: lineItem, Err: err}
	}
}

// addDefaults returns a command that appends the entry templates.
func (v *View) addDefaults() tea.Cmd {
	date := v.date
	return func() tea.Msg {
		if v.timeCard == nil {
			return messages.DefaultsAdded{Err: errNoTimeCardService}
		}
		card, err := v.timeCard.AddDefaults(v.ctx, date)
		return messages.DefaultsAdded{Card: card, Err: err}
	}
}

// copyEntry returns a command that puts an entry on the clipboard.
func (v *View) copyEntry(date time.Time, lineItem int) tea.Cmd {
	return func() tea.Msg {
		if v.timeCard == nil {
			return messages.ClipboardChanged{Err: errNoTimeCardService}
		}
		clip, err := v.timeCard.Copy(v.ctx, date, lineItem)
		return messages.ClipboardChanged{Clipboard: clip, Err: err}
	}
}

// paste returns a command that appends the clipboard entry to the current date.
func (v *View) paste() tea.Cmd {
	clip, date := v.clipboard, v.date
	return func() tea.Msg {
		if v.timeCard == nil {
			return messages.EntryPasted{Err: errNoTimeCardService}
		}
		e, err := v.timeCard.Paste(v.ctx, clip, date)
		return messages.EntryPasted{Entry: e, Err: err}
	}
}

// startSubmission returns a command that submits the current date.
func (v *View) startSubmission() tea.Cmd {
	date := v.date
	return func() tea.Msg {
		if v.submission == nil {
			return messages.SubmissionStarted{Err: errors.New("submission service not available")}
		}
		task, err := v.submission.Start(v.ctx, date)
		return messages.SubmissionStarted{Task: task, Err: err}
	}
}

// waitForEvent returns a command that delivers the next event of task, or
// its result once the event stream is closed.
func waitForEvent(ctx context.Context, task driving.SubmissionTask) tea.Cmd {
	return func() tea.Msg {
		if event, ok := <-task.Updates(); ok {
			return messages.SubmissionProgress{Task: task, Event: event}
		}
		result, err := task.Wait(ctx)
		return messages.SubmissionFinished{Result: result, Err: err}
	}
}

func (v *View) setCard(card domain.TimeCard) {
	v.card = card
	v.entries.SetEntries(card.Entries)
}

// View renders the day view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.date.Format(headerLayout)))
	b.WriteString("  ")
	b.WriteString(v.renderTotal())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.entries.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	b.WriteString("\n")
	b.WriteString(v.status.View())

	return b.String()
}

// renderTotal renders the hours total, highlighted when it misses the target.
func (v *View) renderTotal() string {
	total := "Total: " + strconv.FormatFloat(v.card.Hours(), 'f', -1, 64) + "h"
	if v.card.MeetsTarget(v.target) {
		return v.styles.Success.Render(total)
	}
	return v.styles.Warning.Render(total + " of " + strconv.FormatFloat(v.target, 'f', -1, 64) + "h")
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	bindings := v.keymap.DayHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, fmt.Sprintf("[%s] %s", b.Help().Key, b.Help().Desc))
	}
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	// Title, blank line, help and status bar.
	v.entries.SetDimensions(width, height-6)
	v.status.SetWidth(width)
}

// Date returns the date shown.
func (v *View) Date() time.Time {
	return v.date
}

// Card returns the time card shown.
func (v *View) Card() domain.TimeCard {
	return v.card
}

// Clipboard returns the copied entry.
func (v *View) Clipboard() domain.Clipboard {
	return v.clipboard
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}

// Submitting reports whether a submission is being followed.
func (v *View) Submitting() bool {
	return v.task != nil
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
