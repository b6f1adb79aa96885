package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoTimeCardService indicates that no time card service was provided.
	ErrNoTimeCardService = errors.New("time card service is required")
)
