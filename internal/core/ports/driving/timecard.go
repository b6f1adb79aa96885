package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

// TimeCardService manages the ledger of time-card entries.
// Entries are normalised and validated on every write.
type TimeCardService interface {
	// Get retrieves one entry.
	Get(ctx context.Context, date time.Time, lineItem int) (*domain.Entry, error)

	// Add persists entry at its own key unless that key is taken.
	Add(ctx context.Context, entry domain.Entry) error

	// Update replaces the fields of the entry at the same key.
	Update(ctx context.Context, entry domain.Entry) error

	// Delete removes one entry and renumbers the rest of its day.
	Delete(ctx context.Context, date time.Time, lineItem int) error

	// Day returns the time card of date and makes it the current view.
	Day(ctx context.Context, date time.Time) (domain.TimeCard, error)

	// CurrentView returns the card last returned by Day.
	CurrentView() (domain.TimeCard, bool)

	// Find searches entry descriptions.
	Find(ctx context.Context, query FindQuery) ([]domain.Entry, error)

	// Append adds entry as the last line item of date.
	Append(ctx context.Context, date time.Time, entry domain.Entry) (*domain.Entry, error)

	// AddDefaults appends every configured entry template to date.
	AddDefaults(ctx context.Context, date time.Time) (domain.TimeCard, error)

	// Copy puts the entry at (date, lineItem) on a clipboard.
	Copy(ctx context.Context, date time.Time, lineItem int) (domain.Clipboard, error)

	// Paste appends the clipboard entry to date.
	Paste(ctx context.Context, clip domain.Clipboard, date time.Time) (*domain.Entry, error)

	// Repair rewrites the line items of date to 0..n-1.
	Repair(ctx context.Context, date time.Time) (domain.TimeCard, error)
}

// FindQuery selects entries by description and date range.
// Zero dates default to 2019-01-01 and today.
type FindQuery struct {
	// Text is matched as a substring of the description.
	Text string

	// From is the first work date included.
	From time.Time

	// To is the last work date included.
	To time.Time
}
