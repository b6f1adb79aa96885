package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/formdriver/dryrun"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/timecard-cli/internal/core/services"
)

// newTestPorts wires real services over in-memory stores. Submissions
// only ever reach the recording driver.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	settings := services.NewSettingsService(memory.NewConfigStore())
	_, err := settings.EnsureDefaults()
	require.NoError(t, err)

	entries := memory.NewEntryStore()
	credentials := services.NewCredentialsService(memory.NewSecretStore(), nil)
	recorder := dryrun.NewFactory()
	submission := services.NewSubmissionService(entries, settings, credentials, recorder, recorder)

	return &Ports{
		TimeCard:    services.NewTimeCardService(entries, settings),
		Submission:  submission,
		Settings:    settings,
		Credentials: credentials,
	}
}

func TestNewPorts(t *testing.T) {
	full := newTestPorts(t)

	ports := NewPorts(full.TimeCard, full.Submission, full.Settings)

	require.NotNil(t, ports)
	assert.Equal(t, full.TimeCard, ports.TimeCard)
	assert.Equal(t, full.Submission, ports.Submission)
	assert.Equal(t, full.Settings, ports.Settings)
	assert.Nil(t, ports.Credentials)
	assert.Nil(t, ports.Watcher)
}

func TestPorts_Validate_AllSet(t *testing.T) {
	ports := newTestPorts(t)

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_CredentialsOptional(t *testing.T) {
	ports := newTestPorts(t)
	ports.Credentials = nil

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingTimeCard(t *testing.T) {
	ports := newTestPorts(t)
	ports.TimeCard = nil

	assert.ErrorIs(t, ports.Validate(), ErrMissingTimeCardService)
}

func TestPorts_Validate_MissingSubmission(t *testing.T) {
	ports := newTestPorts(t)
	ports.Submission = nil

	assert.ErrorIs(t, ports.Validate(), ErrMissingSubmissionService)
}

func TestPorts_Validate_MissingSettings(t *testing.T) {
	ports := newTestPorts(t)
	ports.Settings = nil

	assert.ErrorIs(t, ports.Validate(), ErrMissingSettingsService)
}
