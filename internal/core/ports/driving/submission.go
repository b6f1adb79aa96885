package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

// SubmissionService pushes a day's time card into the remote system.
// At most one submission runs at a time.
type SubmissionService interface {
	// Start submits the time card of date on a background worker.
	// Returns domain.ErrEmptyTimeCard for a day without entries and
	// domain.ErrSubmissionInProgress while another submission runs.
	Start(ctx context.Context, date time.Time) (SubmissionTask, error)

	// DryRun is Start against a recording driver that performs no remote I/O.
	// The result carries the transcript of driver calls.
	DryRun(ctx context.Context, date time.Time) (SubmissionTask, error)

	// Active returns the most recent task while it is not finished.
	Active() (SubmissionTask, bool)
}

// SubmissionTask is the handle of a background submission.
type SubmissionTask interface {
	// ID uniquely identifies the task.
	ID() string

	// Date is the work date being submitted.
	Date() time.Time

	// State returns the task lifecycle state.
	State() domain.TaskState

	// Session returns the remote session state.
	Session() domain.SessionState

	// Status returns the latest event. Before the first event it is a
	// progress event with Index 0.
	Status() domain.SubmissionEvent

	// Updates delivers every event in order and is closed after the
	// terminal one. It never blocks the worker.
	Updates() <-chan domain.SubmissionEvent

	// Done is closed once the task is finished.
	Done() <-chan struct{}

	// Wait blocks until the task finishes or ctx is done. The error is the
	// terminal event's error, or ctx's.
	Wait(ctx context.Context) (domain.SubmissionResult, error)
}
