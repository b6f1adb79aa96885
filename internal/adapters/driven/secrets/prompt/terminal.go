// Package prompt asks the operator for secrets on a terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// Ensure Terminal implements the interface.
var _ driven.SecretPrompter = (*Terminal)(nil)

// Terminal prompts on a terminal without echoing the answer. When the
// input is not a terminal, a line is read from it instead.
type Terminal struct {
	in  *os.File
	out io.Writer

	// Interactive requires a terminal; piped input is then refused.
	Interactive bool
}

// NewTerminal creates a prompter reading from in and writing the prompt to out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// PromptSecret asks for the password of account.
func (p *Terminal) PromptSecret(ctx context.Context, account string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fd := int(p.in.Fd())
	isTerminal := term.IsTerminal(fd)
	if !isTerminal && p.Interactive {
		return "", domain.ErrPromptUnavailable
	}

	fmt.Fprintf(p.out, "Password for %s: ", account)
	if isTerminal {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrPromptUnavailable, err)
		}
		return string(secret), nil
	}
	return readLine(p.in)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: %w", domain.ErrPromptUnavailable, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
