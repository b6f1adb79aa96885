// Package tui provides an interactive terminal user interface for timecard.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// TimeCard manages the entry ledger.
	TimeCard driving.TimeCardService

	// Submission pushes time cards into the remote system.
	Submission driving.SubmissionService

	// Settings manages application settings.
	Settings driving.SettingsService

	// Credentials manages the remote account password.
	Credentials driving.CredentialsService

	// Watcher reports configuration file changes. Optional.
	Watcher driven.ConfigWatcher
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	timeCard driving.TimeCardService,
	submission driving.SubmissionService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		TimeCard:   timeCard,
		Submission: submission,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.TimeCard == nil {
		return ErrMissingTimeCardService
	}
	if p.Submission == nil {
		return ErrMissingSubmissionService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
