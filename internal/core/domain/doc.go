// Package domain defines the core business entities for timecard.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entry: One line item of work or leave time for a single date
//   - TimeCard: The ordered entries of one date plus their total hours
//   - Clipboard: A copied entry threaded through the UI layer
//   - FormControls: The opaque control identifiers of the remote form
//   - SubmissionEvent: Progress and terminal notifications of a submission
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
