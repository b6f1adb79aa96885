package driven

import "context"

// SecretStore persists secrets per account, e.g. in the OS keychain.
type SecretStore interface {
	// Get returns the secret of account.
	// Returns domain.ErrSecretNotFound if none is stored.
	Get(account string) (string, error)

	// Set stores or replaces the secret of account.
	Set(account, secret string) error

	// Delete removes the secret of account. Missing secrets are not an error.
	Delete(account string) error
}

// SecretPrompter asks the operator for a secret.
type SecretPrompter interface {
	// PromptSecret returns the secret entered for account.
	// Returns domain.ErrPromptUnavailable if nobody can be asked.
	PromptSecret(ctx context.Context, account string) (string, error)
}
