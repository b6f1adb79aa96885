package domain

import (
	"sort"
	"time"
)

// TimeCard is the read-only projection of one date's entries,
// ordered by line item.
type TimeCard struct {
	Date    time.Time
	Entries []Entry
}

// NewTimeCard builds a time card for date from entries in any order.
// Entries are ordered by line item and renumbered 0..n-1, so a day whose
// stored line items have gaps or duplicates still reads densely.
func NewTimeCard(date time.Time, entries []Entry) TimeCard {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].LineItem < ordered[j].LineItem
	})
	for i := range ordered {
		ordered[i].LineItem = i
	}
	return TimeCard{Date: Day(date), Entries: ordered}
}

// Hours returns the sum of entry hours.
func (c TimeCard) Hours() float64 {
	var total float64
	for _, e := range c.Entries {
		total += e.Hours
	}
	return total
}

// Len returns the number of entries.
func (c TimeCard) Len() int {
	return len(c.Entries)
}

// Complete reports whether the card has a date and at least one entry.
// Only complete cards can be submitted.
func (c TimeCard) Complete() bool {
	return !c.Date.IsZero() && len(c.Entries) > 0
}

// MeetsTarget reports whether the total equals the daily target hours.
func (c TimeCard) MeetsTarget(target float64) bool {
	const epsilon = 1e-9
	diff := c.Hours() - target
	return diff < epsilon && diff > -epsilon
}

// Lines returns the submission tuples of the card, in card order.
func (c TimeCard) Lines() []SubmissionLine {
	lines := make([]SubmissionLine, len(c.Entries))
	for i, e := range c.Entries {
		lines[i] = e.SubmissionLine()
	}
	return lines
}
