package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

// EntryStore persists time-card entries keyed by (work date, line item).
// Dates are compared by calendar day.
type EntryStore interface {
	// Get retrieves the entry at (date, lineItem).
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, date time.Time, lineItem int) (*domain.Entry, error)

	// Add persists the entry unless one already exists at its key,
	// in which case it is a no-op.
	Add(ctx context.Context, entry domain.Entry) error

	// Update overwrites every non-key field of the entry at the same key.
	// It is a no-op if the key does not exist.
	Update(ctx context.Context, entry domain.Entry) error

	// Delete removes the entry at (date, lineItem) and renumbers the
	// remaining entries of that date to 0..n-1, keeping their order.
	Delete(ctx context.Context, date time.Time, lineItem int) error

	// Day returns every entry of date ordered by line item.
	Day(ctx context.Context, date time.Time) ([]domain.Entry, error)

	// Count returns the number of entries of date.
	Count(ctx context.Context, date time.Time) (int, error)

	// Find returns entries whose description contains text, with work
	// dates in [from, to], ordered by date then line item.
	Find(ctx context.Context, text string, from, to time.Time) ([]domain.Entry, error)

	// Renumber rewrites the line items of date to 0..n-1 in stored order.
	Renumber(ctx context.Context, date time.Time) error

	// Close releases resources.
	Close() error
}
