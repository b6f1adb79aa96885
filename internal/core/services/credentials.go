package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// Ensure CredentialsService implements the interface.
var _ driving.CredentialsService = (*CredentialsService)(nil)

// CredentialsService manages remote account passwords.
type CredentialsService struct {
	store driven.SecretStore

	mu       sync.RWMutex
	prompter driven.SecretPrompter
}

// NewCredentialsService creates a new credentials service.
// The prompter may be nil; missing secrets then fail with
// domain.ErrSecretNotFound.
func NewCredentialsService(store driven.SecretStore, prompter driven.SecretPrompter) *CredentialsService {
	return &CredentialsService{
		store:    store,
		prompter: prompter,
	}
}

// Secret returns the secret of account, prompting once and persisting the
// answer when none is stored.
func (s *CredentialsService) Secret(ctx context.Context, account string) (string, error) {
	if account == "" {
		return "", fmt.Errorf("%w: account is empty", domain.ErrInvalidInput)
	}

	secret, err := s.store.Get(account)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("get secret: %w", err)
	}

	s.mu.RLock()
	prompter := s.prompter
	s.mu.RUnlock()
	if prompter == nil {
		return "", err
	}

	logger.Debug("No stored secret for %s, prompting", account)
	secret, err = prompter.PromptSecret(ctx, account)
	if err != nil {
		return "", fmt.Errorf("prompt secret: %w", err)
	}
	if secret == "" {
		return "", fmt.Errorf("%w: empty secret", domain.ErrInvalidInput)
	}
	if err := s.store.Set(account, secret); err != nil {
		// The secret is still usable for this session.
		logger.Warn("Could not persist secret for %s: %v", account, err)
	}
	return secret, nil
}

// SetSecret stores or replaces the secret of account.
func (s *CredentialsService) SetSecret(account, secret string) error {
	if strings.TrimSpace(account) == "" {
		return fmt.Errorf("%w: account is empty", domain.ErrInvalidInput)
	}
	if secret == "" {
		return fmt.Errorf("%w: empty secret", domain.ErrInvalidInput)
	}
	return s.store.Set(account, secret)
}

// HasSecret reports whether a secret is stored for account.
func (s *CredentialsService) HasSecret(account string) (bool, error) {
	_, err := s.store.Get(account)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrSecretNotFound):
		return false, nil
	default:
		return false, err
	}
}

// DeleteSecret forgets the secret of account.
func (s *CredentialsService) DeleteSecret(account string) error {
	return s.store.Delete(account)
}

// SetPrompter replaces the prompter used for missing secrets.
func (s *CredentialsService) SetPrompter(prompter driven.SecretPrompter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompter = prompter
}
