package driving

import (
	"context"

	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// CredentialsService manages the remote account password.
type CredentialsService interface {
	// Secret returns the secret of account. When none is stored the
	// operator is prompted once and the answer is persisted.
	Secret(ctx context.Context, account string) (string, error)

	// SetSecret stores or replaces the secret of account.
	SetSecret(account, secret string) error

	// HasSecret reports whether a secret is stored for account.
	HasSecret(account string) (bool, error)

	// DeleteSecret forgets the secret of account.
	DeleteSecret(account string) error

	// SetPrompter replaces the prompter used for missing secrets.
	SetPrompter(prompter driven.SecretPrompter)
}
