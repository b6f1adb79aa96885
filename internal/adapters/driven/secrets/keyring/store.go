// Package keyring stores remote account passwords in the operating
// system's keychain (macOS Keychain, Secret Service, Windows Credential
// Manager).
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// DefaultService is the keychain service secrets are filed under.
const DefaultService = "aim"

// Ensure Store implements the interface.
var _ driven.SecretStore = (*Store)(nil)

// Store is a driven.SecretStore backed by the OS keychain.
type Store struct {
	service string
}

// NewStore creates a keychain store for service.
// If service is empty, DefaultService is used.
func NewStore(service string) *Store {
	if service == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

// Service returns the keychain service name.
func (s *Store) Service() string {
	return s.service
}

// Get returns the secret of account.
func (s *Store) Get(account string) (string, error) {
	secret, err := gokeyring.Get(s.service, account)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", domain.ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read keychain: %w", err)
	}
	return secret, nil
}

// Set stores or replaces the secret of account.
func (s *Store) Set(account, secret string) error {
	if err := gokeyring.Set(s.service, account, secret); err != nil {
		return fmt.Errorf("write keychain: %w", err)
	}
	return nil
}

// Delete removes the secret of account.
func (s *Store) Delete(account string) error {
	err := gokeyring.Delete(s.service, account)
	if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return fmt.Errorf("delete from keychain: %w", err)
	}
	return nil
}
