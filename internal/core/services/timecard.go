package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// Ensure TimeCardService implements the interface.
var _ driving.TimeCardService = (*TimeCardService)(nil)

// defaultFindFrom is the first date searched when a query has no lower bound.
var defaultFindFrom = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)

// TimeCardService manages the ledger of time-card entries.
type TimeCardService struct {
	store    driven.EntryStore
	settings driving.SettingsService
	now      func() time.Time

	mu      sync.RWMutex
	current *domain.TimeCard
}

// NewTimeCardService creates a new time card service.
// Settings supply the entry templates; if nil the built-in ones are used.
func NewTimeCardService(store driven.EntryStore, settings driving.SettingsService) *TimeCardService {
	return &TimeCardService{
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Get retrieves one entry. lineItem is a position in the day as Day
// returns it, which may differ from the stored number on a damaged day.
func (s *TimeCardService) Get(ctx context.Context, date time.Time, lineItem int) (*domain.Entry, error) {
	entries, err := s.store.Day(ctx, domain.Day(date))
	if err != nil {
		return nil, fmt.Errorf("load day: %w", err)
	}
	card := domain.NewTimeCard(date, entries)
	if lineItem < 0 || lineItem >= card.Len() {
		return nil, domain.ErrNotFound
	}
	entry := card.Entries[lineItem]
	return &entry, nil
}

// Add persists entry at its own key unless that key is taken.
func (s *TimeCardService) Add(ctx context.Context, entry domain.Entry) error {
	entry, err := prepare(entry)
	if err != nil {
		return err
	}
	if _, err := s.settle(ctx, entry.WorkDate); err != nil {
		return err
	}
	if err := s.store.Add(ctx, entry); err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	return nil
}

// Update replaces the fields of the entry at the same key.
func (s *TimeCardService) Update(ctx context.Context, entry domain.Entry) error {
	entry, err := prepare(entry)
	if err != nil {
		return err
	}
	if _, err := s.settle(ctx, entry.WorkDate); err != nil {
		return err
	}
	if err := s.store.Update(ctx, entry); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// Delete removes one entry and renumbers the rest of its day.
func (s *TimeCardService) Delete(ctx context.Context, date time.Time, lineItem int) error {
	date = domain.Day(date)
	if _, err := s.settle(ctx, date); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, date, lineItem); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Day returns the time card of date and makes it the current view.
func (s *TimeCardService) Day(ctx context.Context, date time.Time) (domain.TimeCard, error) {
	entries, err := s.store.Day(ctx, domain.Day(date))
	if err != nil {
		return domain.TimeCard{}, fmt.Errorf("load day: %w", err)
	}
	card := domain.NewTimeCard(date, entries)

	s.mu.Lock()
	s.current = &card
	s.mu.Unlock()

	return card, nil
}

// CurrentView returns the card last returned by Day.
func (s *TimeCardService) CurrentView() (domain.TimeCard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.TimeCard{}, false
	}
	return *s.current, true
}

// Find searches entry descriptions within a date range.
func (s *TimeCardService) Find(ctx context.Context, query driving.FindQuery) ([]domain.Entry, error) {
	from := query.From
	if from.IsZero() {
		from = defaultFindFrom
	}
	to := query.To
	if to.IsZero() {
		to = s.now()
	}
	from, to = domain.Day(from), domain.Day(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends before it starts", domain.ErrInvalidInput)
	}

	entries, err := s.store.Find(ctx, query.Text, from, to)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	return entries, nil
}

// Append adds entry as the last line item of date.
func (s *TimeCardService) Append(ctx context.Context, date time.Time, entry domain.Entry) (*domain.Entry, error) {
	date = domain.Day(date)
	entry.WorkDate = date
	entry.LineItem = 0
	entry, err := prepare(entry)
	if err != nil {
		return nil, err
	}
	n, err := s.settle(ctx, date)
	if err != nil {
		return nil, err
	}

	entry.LineItem = n
	if err := s.store.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}
	stored, err := s.store.Get(ctx, date, n)
	if err != nil {
		return nil, fmt.Errorf("append entry %s: %w", entry.Key(), err)
	}
	if stored.SubmissionLine() != entry.SubmissionLine() {
		return nil, fmt.Errorf("append entry %s: %w", entry.Key(), domain.ErrLineItemTaken)
	}
	logger.Debug("Appended %s", entry.Key())
	return &entry, nil
}

// AddDefaults appends every configured entry template to date.
func (s *TimeCardService) AddDefaults(ctx context.Context, date time.Time) (domain.TimeCard, error) {
	templates := domain.DefaultEntryTemplates()
	if s.settings != nil {
		configured, err := s.settings.Templates()
		if err != nil {
			return domain.TimeCard{}, fmt.Errorf("load templates: %w", err)
		}
		templates = configured
	}

	for _, t := range templates {
		if _, err := s.Append(ctx, date, t.Entry(date, 0)); err != nil {
			return domain.TimeCard{}, err
		}
	}
	return s.Day(ctx, date)
}

// Copy puts the entry at (date, lineItem) on a clipboard.
func (s *TimeCardService) Copy(ctx context.Context, date time.Time, lineItem int) (domain.Clipboard, error) {
	entry, err := s.Get(ctx, date, lineItem)
	if err != nil {
		return domain.Clipboard{}, err
	}
	return domain.NewClipboard(*entry), nil
}

// Paste appends the clipboard entry to date.
func (s *TimeCardService) Paste(ctx context.Context, clip domain.Clipboard, date time.Time) (*domain.Entry, error) {
	entry, ok := clip.Entry()
	if !ok {
		return nil, fmt.Errorf("%w: clipboard is empty", domain.ErrInvalidInput)
	}
	return s.Append(ctx, date, entry)
}

// Repair rewrites the line items of date to 0..n-1.
func (s *TimeCardService) Repair(ctx context.Context, date time.Time) (domain.TimeCard, error) {
	if err := s.store.Renumber(ctx, domain.Day(date)); err != nil {
		return domain.TimeCard{}, fmt.Errorf("repair day: %w", err)
	}
	return s.Day(ctx, date)
}

// settle makes the stored line items of date match the positions Day
// reports, renumbering them when they have gaps or duplicates. It returns
// the number of entries of date.
func (s *TimeCardService) settle(ctx context.Context, date time.Time) (int, error) {
	entries, err := s.store.Day(ctx, domain.Day(date))
	if err != nil {
		return 0, fmt.Errorf("load day: %w", err)
	}
	for i, e := range entries {
		if e.LineItem == i {
			continue
		}
		logger.Debug("Renumbering damaged day %s", domain.Day(date).Format(time.DateOnly))
		if err := s.store.Renumber(ctx, domain.Day(date)); err != nil {
			return 0, fmt.Errorf("repair day: %w", err)
		}
		break
	}
	return len(entries), nil
}

func prepare(entry domain.Entry) (domain.Entry, error) {
	entry = entry.Normalize()
	if err := entry.Validate(); err != nil {
		return entry, err
	}
	return entry, nil
}
