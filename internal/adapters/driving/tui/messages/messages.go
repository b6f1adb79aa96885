// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDay is the time card of one date.
	ViewDay ViewType = iota
	// ViewEditor edits or creates one entry.
	ViewEditor
	// ViewSearch searches entry descriptions.
	ViewSearch
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewPassword asks for the remote account password.
	ViewPassword
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDay:
		return "day"
	case ViewEditor:
		return "editor"
	case ViewSearch:
		return "search"
	case ViewSettings:
		return "settings"
	case ViewPassword:
		return "password"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DaySelected asks the day view to show another date.
type DaySelected struct {
	Date time.Time
}

// DayLoaded carries the time card of a date.
type DayLoaded struct {
	Card domain.TimeCard
	Err  error
}

// EditRequested opens the entry editor. A nil Entry creates a new line
// item on Date.
type EditRequested struct {
	Date  time.Time
	Entry *domain.Entry
}

// EntrySaved signals an entry was added or updated.
type EntrySaved struct {
	Entry *domain.Entry
	Err   error
}

// EntryRemoved signals an entry was deleted and its day renumbered.
type EntryRemoved struct {
	Date     time.Time
	LineItem int
	Err      error
}

// DefaultsAdded signals the entry templates were appended to a day.
type DefaultsAdded struct {
	Card domain.TimeCard
	Err  error
}

// ClipboardChanged carries a copied entry.
type ClipboardChanged struct {
	Clipboard domain.Clipboard
	Err       error
}

// EntryPasted signals the clipboard entry was appended to a day.
type EntryPasted struct {
	Entry *domain.Entry
	Err   error
}

// SubmissionStarted signals a background submission was started.
type SubmissionStarted struct {
	Task driving.SubmissionTask
	Err  error
}

// SubmissionProgress carries one event of a running submission.
type SubmissionProgress struct {
	Task  driving.SubmissionTask
	Event domain.SubmissionEvent
}

// SubmissionFinished signals a submission ended.
type SubmissionFinished struct {
	Result domain.SubmissionResult
	Err    error
}

// SearchCompleted carries the entries matching a search.
type SearchCompleted struct {
	Entries []domain.Entry
	Err     error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// ConfigChanged signals the configuration file changed on disk.
type ConfigChanged struct{}

// PasswordRequested asks the operator for the password of Account.
// Reply must be called exactly once.
type PasswordRequested struct {
	Account string
	Reply   func(secret string, err error)
}

// PasswordSaved signals the stored password was replaced or deleted.
type PasswordSaved struct {
	Err error
}
