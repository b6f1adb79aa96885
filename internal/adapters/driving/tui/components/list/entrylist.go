// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

// EntryList displays time-card entries as a navigable table.
type EntryList struct {
	entries  []domain.Entry
	selected int
	showDate bool
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// NewEntryList creates a new entry list component. With showDate the
// work date is rendered in front of every row.
func NewEntryList(s *styles.Styles, showDate bool) *EntryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &EntryList{
		showDate: showDate,
		empty:    "No entries",
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the entry list.
func (r *EntryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *EntryList) Update(msg tea.Msg) (*EntryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.entries) > 0 {
				r.selected = len(r.entries) - 1
			}
		}
	}
	return r, nil
}

// View renders the entry table.
func (r *EntryList) View() string {
	if len(r.entries) == 0 {
		return r.styles.Muted.Render(r.empty)
	}

	lines := make([]string, 0, len(r.entries)+1)
	lines = append(lines, r.styles.Subtitle.Render(r.header()))

	visibleCount := r.height - 1
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.entries) {
		end = len(r.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderEntry(i, &r.entries[i]))
	}

	return strings.Join(lines, "\n")
}

const rowFormat = "%s%-4s %-9s %-5s %6s  %-15s %-*s %s"

func (r *EntryList) header() string {
	date := ""
	if r.showDate {
		date = fmt.Sprintf("%-11s", "Date")
	}
	return fmt.Sprintf("  "+date+rowFormat, "", "Line", "Workorder", "Phase", "Hours",
		"Action", r.descriptionWidth(), "Description", "Code")
}

func (r *EntryList) descriptionWidth() int {
	width := r.width - 58
	if r.showDate {
		width -= 11
	}
	if width < 12 {
		width = 12
	}
	return width
}

// renderEntry formats a single row.
func (r *EntryList) renderEntry(index int, e *domain.Entry) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	date := ""
	if r.showDate {
		date = fmt.Sprintf("%-11s", e.WorkDate.Format(domain.DateLayout))
	}

	descWidth := r.descriptionWidth()
	desc := e.Description
	if len(desc) > descWidth {
		desc = desc[:descWidth-3] + "..."
	}

	row := fmt.Sprintf(indicator+date+rowFormat, "",
		strconv.Itoa(e.LineItem), e.Workorder, e.Phase,
		strconv.FormatFloat(e.Hours, 'f', -1, 64),
		e.Action, descWidth, desc, e.TimeCode)

	if index == r.selected {
		return r.styles.Selected.Render(row)
	}
	if e.IsLeave() {
		return r.styles.Muted.Render(row)
	}
	return r.styles.Normal.Render(row)
}

// SetEntries updates the list, keeping the selection in range.
func (r *EntryList) SetEntries(entries []domain.Entry) {
	r.entries = entries
	if r.selected >= len(entries) {
		r.selected = len(entries) - 1
	}
	if r.selected < 0 {
		r.selected = 0
	}
}

// SetEmptyText sets the text shown when there are no entries.
func (r *EntryList) SetEmptyText(text string) {
	r.empty = text
}

// Entries returns the current entries.
func (r *EntryList) Entries() []domain.Entry {
	return r.entries
}

// Selected returns the index of the selected entry.
func (r *EntryList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *EntryList) SetSelected(index int) {
	if index >= 0 && index < len(r.entries) {
		r.selected = index
	}
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (r *EntryList) SelectedEntry() *domain.Entry {
	if len(r.entries) == 0 || r.selected < 0 || r.selected >= len(r.entries) {
		return nil
	}
	e := r.entries[r.selected]
	return &e
}

// MoveUp moves selection up.
func (r *EntryList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *EntryList) MoveDown() {
	if r.selected < len(r.entries)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *EntryList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *EntryList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *EntryList) Height() int {
	return r.height
}

// Count returns the number of entries.
func (r *EntryList) Count() int {
	return len(r.entries)
}

// IsEmpty returns whether the list is empty.
func (r *EntryList) IsEmpty() bool {
	return len(r.entries) == 0
}
