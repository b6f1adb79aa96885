package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// Prompter asks for secrets through the password view. Requests made by
// a submission running in the background are delivered to the program
// as messages.PasswordRequested.
type Prompter struct {
	requests chan messages.PasswordRequested
	done     chan struct{}
}

// Ensure Prompter implements the interface.
var _ driven.SecretPrompter = (*Prompter)(nil)

// NewPrompter creates a prompter with no pending requests.
func NewPrompter() *Prompter {
	return &Prompter{
		requests: make(chan messages.PasswordRequested),
		done:     make(chan struct{}),
	}
}

type secretReply struct {
	secret string
	err    error
}

// PromptSecret blocks until the operator answers or ctx is done.
func (p *Prompter) PromptSecret(ctx context.Context, account string) (string, error) {
	replies := make(chan secretReply, 1)
	req := messages.PasswordRequested{
		Account: account,
		Reply: func(secret string, err error) {
			select {
			case replies <- secretReply{secret: secret, err: err}:
			default:
			}
		},
	}

	select {
	case p.requests <- req:
	case <-p.done:
		return "", fmt.Errorf("%w: interface closed", domain.ErrPromptUnavailable)
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-replies:
		return r.secret, r.err
	case <-p.done:
		return "", fmt.Errorf("%w: interface closed", domain.ErrPromptUnavailable)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Wait returns a command delivering the next request. It returns nil
// once the prompter is closed.
func (p *Prompter) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-p.requests:
			return req
		case <-p.done:
			return nil
		}
	}
}

// Close fails pending and future prompts.
func (p *Prompter) Close() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}
