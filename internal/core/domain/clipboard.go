package domain

// Clipboard holds one copied entry. It is a plain value owned by the UI
// layer and passed explicitly to paste operations.
type Clipboard struct {
	entry *Entry
}

// NewClipboard returns a clipboard holding a copy of e.
func NewClipboard(e Entry) Clipboard {
	return Clipboard{entry: &e}
}

// Empty reports whether nothing has been copied.
func (c Clipboard) Empty() bool {
	return c.entry == nil
}

// Entry returns the copied entry.
func (c Clipboard) Entry() (Entry, bool) {
	if c.entry == nil {
		return Entry{}, false
	}
	return *c.entry, true
}
