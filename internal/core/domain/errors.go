package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyTimeCard indicates a time card without a date or without entries.
	ErrEmptyTimeCard = errors.New("time card has no entries")

	// ErrLineItemTaken indicates an append found its line item already stored.
	ErrLineItemTaken = errors.New("line item already taken")

	// ErrConfigMissing indicates no configuration file existed yet.
	// Config stores recover from it by writing defaults.
	ErrConfigMissing = errors.New("configuration missing")

	// Submission Errors.

	// ErrSubmissionInProgress indicates a submission is already running.
	ErrSubmissionInProgress = errors.New("submission in progress")

	// ErrAuthFailed indicates the remote login did not complete.
	// It is fatal for the submission attempt and never retried automatically.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrDriver indicates the remote UI could not be driven: a control was not
	// found, a wait timed out or navigation failed. It aborts the batch.
	ErrDriver = errors.New("form driver failure")

	// ErrEntryRejected indicates the remote system rejected one or more entries.
	ErrEntryRejected = errors.New("entries rejected")

	// Credential Errors.

	// ErrSecretNotFound indicates no secret is stored for an account.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrPromptUnavailable indicates the operator cannot be asked for a secret,
	// e.g. stdin is not a terminal.
	ErrPromptUnavailable = errors.New("secret prompt unavailable")
)

// EntryRejectedError lists the workorders of entries the remote system
// reported as invalid, in submission order.
type EntryRejectedError struct {
	Workorders []string
}

// Error implements error.
func (e *EntryRejectedError) Error() string {
	return fmt.Sprintf("invalid entries: %s", strings.Join(e.Workorders, ", "))
}

// Is makes errors.Is(err, ErrEntryRejected) hold.
func (e *EntryRejectedError) Is(target error) bool {
	return target == ErrEntryRejected
}

// DriverError wraps a failed remote UI step with the step that failed.
type DriverError struct {
	Op      string
	Control string
	Err     error
}

// Error implements error.
func (e *DriverError) Error() string {
	if e.Control == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Control, e.Err)
}

// Unwrap returns the underlying error.
func (e *DriverError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDriver) hold.
func (e *DriverError) Is(target error) bool {
	return target == ErrDriver
}
