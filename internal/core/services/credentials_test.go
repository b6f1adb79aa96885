package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

// failingSecretStore rejects writes.
type failingSecretStore struct {
	*memory.SecretStore
}

func (f failingSecretStore) Set(_, _ string) error {
	return errors.New("keychain locked")
}

func TestCredentialsService_StoredSecret(t *testing.T) {
	store := memory.NewSecretStore()
	require.NoError(t, store.Set("jdoe", "hunter2"))
	prompter := &mockPrompter{secret: "other"}
	svc := NewCredentialsService(store, prompter)

	secret, err := svc.Secret(context.Background(), "jdoe")

	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret)
	assert.Zero(t, prompter.calls)
}

func TestCredentialsService_PromptsAndPersists(t *testing.T) {
	store := memory.NewSecretStore()
	prompter := &mockPrompter{secret: "typed"}
	svc := NewCredentialsService(store, prompter)

	secret, err := svc.Secret(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "typed", secret)

	_, err = svc.Secret(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, 1, prompter.calls, "the answer is persisted")

	has, err := svc.HasSecret("jdoe")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCredentialsService_PersistFailureStillReturnsSecret(t *testing.T) {
	svc := NewCredentialsService(failingSecretStore{memory.NewSecretStore()}, &mockPrompter{secret: "typed"})

	secret, err := svc.Secret(context.Background(), "jdoe")

	require.NoError(t, err)
	assert.Equal(t, "typed", secret)
}

func TestCredentialsService_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewCredentialsService(memory.NewSecretStore(), nil).Secret(ctx, "jdoe")
	assert.True(t, errors.Is(err, domain.ErrSecretNotFound))

	_, err = NewCredentialsService(memory.NewSecretStore(), nil).Secret(ctx, "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = NewCredentialsService(memory.NewSecretStore(), &mockPrompter{}).Secret(ctx, "jdoe")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = NewCredentialsService(memory.NewSecretStore(), &mockPrompter{err: domain.ErrPromptUnavailable}).Secret(ctx, "jdoe")
	assert.True(t, errors.Is(err, domain.ErrPromptUnavailable))
}

func TestCredentialsService_SetPrompter(t *testing.T) {
	svc := NewCredentialsService(memory.NewSecretStore(), nil)
	svc.SetPrompter(&mockPrompter{secret: "late"})

	secret, err := svc.Secret(context.Background(), "jdoe")

	require.NoError(t, err)
	assert.Equal(t, "late", secret)
}

func TestCredentialsService_SetAndDelete(t *testing.T) {
	svc := NewCredentialsService(memory.NewSecretStore(), nil)

	assert.True(t, errors.Is(svc.SetSecret(" ", "x"), domain.ErrInvalidInput))
	assert.True(t, errors.Is(svc.SetSecret("jdoe", ""), domain.ErrInvalidInput))
	require.NoError(t, svc.SetSecret("jdoe", "x"))

	has, err := svc.HasSecret("jdoe")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, svc.DeleteSecret("jdoe"))
	has, err = svc.HasSecret("jdoe")
	require.NoError(t, err)
	assert.False(t, has)
}
