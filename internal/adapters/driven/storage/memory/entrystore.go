package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// Ensure EntryStore implements the interface.
var _ driven.EntryStore = (*EntryStore)(nil)

// EntryStore is an in-memory implementation of driven.EntryStore.
// Rows keep their insertion order, which breaks ties between equal
// line items the way a table scan would.
type EntryStore struct {
	mu   sync.RWMutex
	rows []domain.Entry
}

// NewEntryStore creates a new in-memory entry store.
func NewEntryStore() *EntryStore {
	return &EntryStore{}
}

// Get retrieves the entry at (date, lineItem).
func (s *EntryStore) Get(_ context.Context, date time.Time, lineItem int) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(domain.Day(date), lineItem)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	entry := s.rows[i]
	return &entry, nil
}

// Add persists the entry unless its key is taken.
func (s *EntryStore) Add(_ context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.WorkDate = domain.Day(entry.WorkDate)
	if s.index(entry.WorkDate, entry.LineItem) >= 0 {
		return nil
	}
	s.rows = append(s.rows, entry)
	return nil
}

// Seed stores rows exactly as given, skipping the insert-if-absent check.
// It loads days whose line items have gaps or duplicates.
func (s *EntryStore) Seed(entries ...domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		e.WorkDate = domain.Day(e.WorkDate)
		s.rows = append(s.rows, e)
	}
}

// Update overwrites the entry at the same key, if any.
func (s *EntryStore) Update(_ context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.WorkDate = domain.Day(entry.WorkDate)
	if i := s.index(entry.WorkDate, entry.LineItem); i >= 0 {
		s.rows[i] = entry
	}
	return nil
}

// Delete removes the entry and renumbers the rest of its date.
func (s *EntryStore) Delete(_ context.Context, date time.Time, lineItem int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	date = domain.Day(date)
	i := s.index(date, lineItem)
	if i < 0 {
		return nil
	}
	s.rows = slices.Delete(s.rows, i, i+1)
	s.renumber(date)
	return nil
}

// Day returns every entry of date ordered by line item.
func (s *EntryStore) Day(_ context.Context, date time.Time) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.day(domain.Day(date)), nil
}

// Count returns the number of entries of date.
func (s *EntryStore) Count(_ context.Context, date time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	date = domain.Day(date)
	n := 0
	for _, row := range s.rows {
		if row.WorkDate.Equal(date) {
			n++
		}
	}
	return n, nil
}

// Find returns entries whose description contains text within [from, to].
func (s *EntryStore) Find(_ context.Context, text string, from, to time.Time) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	from, to = domain.Day(from), domain.Day(to)
	needle := strings.ToLower(text)

	var result []domain.Entry
	for _, row := range s.rows {
		if row.WorkDate.Before(from) || row.WorkDate.After(to) {
			continue
		}
		if !strings.Contains(strings.ToLower(row.Description), needle) {
			continue
		}
		result = append(result, row)
	}
	slices.SortStableFunc(result, func(a, b domain.Entry) int {
		if c := a.WorkDate.Compare(b.WorkDate); c != 0 {
			return c
		}
		return a.LineItem - b.LineItem
	})
	return result, nil
}

// Renumber rewrites the line items of date to 0..n-1.
func (s *EntryStore) Renumber(_ context.Context, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renumber(domain.Day(date))
	return nil
}

// Close is a no-op.
func (s *EntryStore) Close() error {
	return nil
}

// index returns the position of the first row at the key, or -1
// (caller must hold lock).
func (s *EntryStore) index(date time.Time, lineItem int) int {
	for i, row := range s.rows {
		if row.WorkDate.Equal(date) && row.LineItem == lineItem {
			return i
		}
	}
	return -1
}

// day returns the rows of date ordered by line item (caller must hold lock).
func (s *EntryStore) day(date time.Time) []domain.Entry {
	var result []domain.Entry
	for _, row := range s.rows {
		if row.WorkDate.Equal(date) {
			result = append(result, row)
		}
	}
	slices.SortStableFunc(result, func(a, b domain.Entry) int {
		return a.LineItem - b.LineItem
	})
	return result
}

// renumber reassigns line items of date (caller must hold write lock).
func (s *EntryStore) renumber(date time.Time) {
	ordered := s.day(date)
	kept := s.rows[:0]
	for _, row := range s.rows {
		if !row.WorkDate.Equal(date) {
			kept = append(kept, row)
		}
	}
	for i := range ordered {
		ordered[i].LineItem = i
	}
	s.rows = append(kept, ordered...)
}
