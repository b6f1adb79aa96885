// Package mcp provides an MCP (Model Context Protocol) server adapter for
// timecard. It lets AI assistants read days, search entries and append
// entries. Submission is not exposed.
package mcp

import "errors"

// ErrMissingTimeCardService is returned when the time card service is not provided.
var ErrMissingTimeCardService = errors.New("mcp: time card service is required")
