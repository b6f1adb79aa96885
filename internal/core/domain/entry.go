package domain

import (
	"fmt"
	"strings"
	"time"
)

// Action describes what happened to the work order during the entry.
type Action string

// Available actions.
const (
	ActionWorkComplete   Action = "WORK COMPLETE"
	ActionActiveOngoing  Action = "ACTIVE/ONGOING"
	ActionInitialRespond Action = "INITIAL RESPOND"
	ActionOverhead       Action = "OVERHEAD"
)

// AllActions returns every action in display order.
func AllActions() []Action {
	return []Action{ActionWorkComplete, ActionActiveOngoing, ActionInitialRespond, ActionOverhead}
}

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	switch a {
	case ActionWorkComplete, ActionActiveOngoing, ActionInitialRespond, ActionOverhead:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (a Action) String() string {
	return string(a)
}

// ParseAction matches s against the known actions, ignoring case.
// Dashes and underscores stand for spaces, so "work-complete" is accepted.
func ParseAction(s string) (Action, error) {
	want := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToUpper(strings.TrimSpace(s)))
	for _, a := range AllActions() {
		if string(a) == want || strings.ReplaceAll(string(a), "/", " ") == want {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, s)
}

// TimeCode classifies the hours of an entry.
type TimeCode string

// Available time codes.
const (
	TimeCodeRegular    TimeCode = "R"
	TimeCodeCompTime   TimeCode = "CP"
	TimeCodeOvertime   TimeCode = "OT"
	TimeCodeAnnual     TimeCode = "A"
	TimeCodeSick       TimeCode = "S"
	TimeCodePersonal   TimeCode = "PH"
	TimeCodeCompTaken  TimeCode = "CT"
	TimeCodeAssignment TimeCode = "ASG"
	TimeCodeHoliday    TimeCode = "HOLIDAY"
	TimeCodeHomeWork   TimeCode = "HOMEWORK"
)

// AllTimeCodes returns every time code in display order.
func AllTimeCodes() []TimeCode {
	return []TimeCode{
		TimeCodeRegular, TimeCodeCompTime, TimeCodeOvertime, TimeCodeAnnual, TimeCodeSick,
		TimeCodePersonal, TimeCodeCompTaken, TimeCodeAssignment, TimeCodeHoliday, TimeCodeHomeWork,
	}
}

// IsValid returns true if the time code is recognised.
func (c TimeCode) IsValid() bool {
	for _, known := range AllTimeCodes() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseTimeCode matches s against the known time codes, ignoring case.
// An empty string is the regular code.
func ParseTimeCode(s string) (TimeCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return TimeCodeRegular, nil
	}
	if c := TimeCode(s); c.IsValid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown time code %q", ErrInvalidInput, s)
}

// IsLeave reports whether the code denotes leave or absence. Leave entries
// are submitted without workorder, phase and action.
func (c TimeCode) IsLeave() bool {
	switch c {
	case TimeCodeAnnual, TimeCodeSick, TimeCodePersonal, TimeCodeCompTaken, TimeCodeHoliday:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c TimeCode) String() string {
	return string(c)
}

const (
	// WorkorderWidth is the zero-padded width of a workorder code.
	WorkorderWidth = 6
	// PhaseWidth is the zero-padded width of a phase code.
	PhaseWidth = 3
	// DateLayout is the storage and CLI layout of a work date.
	DateLayout = "2006-01-02"
)

// Entry is one line item of recorded work or leave time.
// (WorkDate, LineItem) identifies the entry; the store assigns LineItem.
type Entry struct {
	WorkDate    time.Time
	LineItem    int
	Workorder   string
	Phase       string
	Hours       float64
	Description string
	Action      Action
	TimeCode    TimeCode
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// Key returns the identifying (date, line item) pair rendered for messages.
func (e Entry) Key() string {
	return fmt.Sprintf("%s#%d", e.WorkDate.Format(DateLayout), e.LineItem)
}

// IsLeave reports whether the entry records leave time.
func (e Entry) IsLeave() bool {
	return e.TimeCode.IsLeave()
}

// Normalize returns a copy with the date truncated and the codes
// zero-padded. Leave entries keep empty codes empty.
func (e Entry) Normalize() Entry {
	e.WorkDate = Day(e.WorkDate)
	e.Workorder = padCode(e.Workorder, WorkorderWidth)
	e.Phase = padCode(e.Phase, PhaseWidth)
	e.Description = strings.TrimSpace(e.Description)
	if e.TimeCode == "" {
		e.TimeCode = TimeCodeRegular
	}
	return e
}

// Validate checks the entry's fields. It expects a normalised entry.
func (e Entry) Validate() error {
	if e.WorkDate.IsZero() {
		return fmt.Errorf("%w: work date is required", ErrInvalidInput)
	}
	if e.LineItem < 0 {
		return fmt.Errorf("%w: line item %d is negative", ErrInvalidInput, e.LineItem)
	}
	if e.Hours < 0 {
		return fmt.Errorf("%w: hours %v is negative", ErrInvalidInput, e.Hours)
	}
	if !e.TimeCode.IsValid() {
		return fmt.Errorf("%w: unknown time code %q", ErrInvalidInput, e.TimeCode)
	}
	if err := checkCode("workorder", e.Workorder, WorkorderWidth); err != nil {
		return err
	}
	if err := checkCode("phase", e.Phase, PhaseWidth); err != nil {
		return err
	}
	if e.IsLeave() {
		return nil
	}
	if e.Workorder == "" || e.Phase == "" {
		return fmt.Errorf("%w: %s entries need a workorder and a phase", ErrInvalidInput, e.TimeCode)
	}
	if !e.Action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, e.Action)
	}
	return nil
}

func padCode(code string, width int) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) >= width {
		return code
	}
	return strings.Repeat("0", width-len(code)) + code
}

func checkCode(name, code string, width int) error {
	if code == "" {
		return nil
	}
	if len(code) != width {
		return fmt.Errorf("%w: %s %q must have %d digits", ErrInvalidInput, name, code, width)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %s %q must be numeric", ErrInvalidInput, name, code)
		}
	}
	return nil
}

// SubmissionLine returns the tuple the remote form receives for e.
func (e Entry) SubmissionLine() SubmissionLine {
	return SubmissionLine{
		Workorder:   e.Workorder,
		Phase:       e.Phase,
		Hours:       e.Hours,
		Description: e.Description,
		Action:      e.Action,
		TimeCode:    e.TimeCode,
	}
}
