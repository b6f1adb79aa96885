package mcp

import (
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// TimeCard reads and appends entries.
	TimeCard driving.TimeCardService

	// Settings supplies the daily hours target. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.TimeCard == nil {
		return ErrMissingTimeCardService
	}
	return nil
}
