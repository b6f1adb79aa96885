package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/timecard-cli/internal/core/services"
)

// failingTimeCardService fails every read and write with err.
type failingTimeCardService struct {
	driving.TimeCardService
	err error
}

func (m *failingTimeCardService) Day(_ context.Context, _ time.Time) (domain.TimeCard, error) {
	return domain.TimeCard{}, m.err
}

func (m *failingTimeCardService) Find(_ context.Context, _ driving.FindQuery) ([]domain.Entry, error) {
	return nil, m.err
}

func (m *failingTimeCardService) Append(_ context.Context, _ time.Time, _ domain.Entry) (*domain.Entry, error) {
	return nil, m.err
}

// newTestServer creates a server over an in-memory ledger holding the
// default entries on 2024-03-04.
func newTestServer(t *testing.T) (*Server, driving.TimeCardService) {
	t.Helper()
	config := memory.NewConfigStore()
	settings := services.NewSettingsService(config)
	timeCard := services.NewTimeCardService(memory.NewEntryStore(), settings)

	date, err := domain.ParseDay("2024-03-04")
	require.NoError(t, err)
	_, err = timeCard.AddDefaults(context.Background(), date)
	require.NoError(t, err)

	server, err := NewServer(&Ports{TimeCard: timeCard, Settings: settings})
	require.NoError(t, err)
	return server, timeCard
}
