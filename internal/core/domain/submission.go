package domain

import (
	"strconv"
	"time"
)

// SubmissionLine is the tuple the remote form receives for one entry.
type SubmissionLine struct {
	Workorder   string
	Phase       string
	Hours       float64
	Description string
	Action      Action
	TimeCode    TimeCode
}

// IsLeave reports whether the line is submitted through the leave-code field.
func (l SubmissionLine) IsLeave() bool {
	return l.TimeCode.IsLeave()
}

// HoursText renders hours as the shortest decimal that round-trips.
func (l SubmissionLine) HoursText() string {
	return strconv.FormatFloat(l.Hours, 'f', -1, 64)
}

// SessionState is the state of a remote session.
type SessionState string

// Session states.
const (
	// SessionLoggedOut means no authenticated session exists.
	SessionLoggedOut SessionState = "logged_out"

	// SessionAuthenticating means credentials have been sent.
	SessionAuthenticating SessionState = "authenticating"

	// SessionReady means the remote application accepted the login.
	SessionReady SessionState = "ready"

	// SessionSubmitting means entries are being typed into the form.
	SessionSubmitting SessionState = "submitting"

	// SessionFinished means the batch has been saved.
	SessionFinished SessionState = "finished"
)

// String returns the string representation.
func (s SessionState) String() string {
	return string(s)
}

// CanTransition reports whether the session may move from s to next.
func (s SessionState) CanTransition(next SessionState) bool {
	switch s {
	case SessionLoggedOut:
		return next == SessionAuthenticating
	case SessionAuthenticating:
		return next == SessionReady || next == SessionLoggedOut
	case SessionReady:
		return next == SessionSubmitting
	case SessionSubmitting:
		return next == SessionFinished
	default:
		return false
	}
}

// TaskState is the lifecycle state of a background submission.
type TaskState string

// Task states.
const (
	TaskPending TaskState = "pending"
	TaskRunning TaskState = "running"
	TaskDone    TaskState = "done"
	TaskFailed  TaskState = "failed"
)

// String returns the string representation.
func (s TaskState) String() string {
	return string(s)
}

// IsTerminal returns true once the task can no longer change state.
func (s TaskState) IsTerminal() bool {
	return s == TaskDone || s == TaskFailed
}

// EventKind classifies a submission event.
type EventKind string

// Event kinds. Progress is emitted once per entry; exactly one of the
// other kinds ends the sequence.
const (
	EventProgress  EventKind = "progress"
	EventSucceeded EventKind = "succeeded"
	EventRejected  EventKind = "rejected"
	EventAborted   EventKind = "aborted"
)

// IsTerminal returns true for the final event of a sequence.
func (k EventKind) IsTerminal() bool {
	return k != EventProgress
}

// SubmissionEvent reports submission progress.
type SubmissionEvent struct {
	Kind EventKind

	// Index is the 1-based entry being processed. Zero on terminal events.
	Index int

	// Total is the number of entries in the batch.
	Total int

	// Message is the text shown to the user.
	Message string

	// FailedWorkorders lists remote-rejected entries, in submission order.
	FailedWorkorders []string

	// Err is set on aborted events.
	Err error
}

// Progress messages.
const (
	MessageDone           = "Done!"
	messageRejectedPrefix = "Error, "
)

// ProgressEvent returns the event emitted before entry index of total.
func ProgressEvent(index, total int) SubmissionEvent {
	return SubmissionEvent{
		Kind:    EventProgress,
		Index:   index,
		Total:   total,
		Message: "Processing " + strconv.Itoa(index) + "/" + strconv.Itoa(total),
	}
}

// SucceededEvent returns the terminal event of a clean batch.
func SucceededEvent(total int) SubmissionEvent {
	return SubmissionEvent{Kind: EventSucceeded, Total: total, Message: MessageDone}
}

// RejectedEvent returns the terminal event of a batch with remote-rejected
// entries.
func RejectedEvent(total int, workorders []string) SubmissionEvent {
	err := &EntryRejectedError{Workorders: workorders}
	return SubmissionEvent{
		Kind:             EventRejected,
		Total:            total,
		Message:          messageRejectedPrefix + err.Error(),
		FailedWorkorders: workorders,
		Err:              err,
	}
}

// AbortedEvent returns the terminal event of a batch stopped by err.
func AbortedEvent(total int, err error) SubmissionEvent {
	return SubmissionEvent{
		Kind:    EventAborted,
		Total:   total,
		Message: messageRejectedPrefix + err.Error(),
		Err:     err,
	}
}

// SubmissionResult summarises a finished submission.
type SubmissionResult struct {
	TaskID     string
	Date       time.Time
	Entries    int
	Final      SubmissionEvent
	StartedAt  time.Time
	FinishedAt time.Time

	// Transcript lists the driver calls of a dry run.
	Transcript []string
}

// Succeeded reports whether every entry was accepted.
func (r SubmissionResult) Succeeded() bool {
	return r.Final.Kind == EventSucceeded
}
