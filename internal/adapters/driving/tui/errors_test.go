package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingTimeCardService,
		ErrMissingSubmissionService,
		ErrMissingSettingsService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingTimeCardService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingTimeCardService.Error(), "time card service")
}

func TestErrMissingSubmissionService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSubmissionService.Error(), "submission service")
}

func TestErrMissingSettingsService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSettingsService.Error(), "settings service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
