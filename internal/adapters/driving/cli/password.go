package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var passwordDelete bool

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Store the remote password in the keychain",
	Long: `Ask for the password of the configured remote account and store it in
the system keychain. Use --delete to forget it.`,
	Args: cobra.NoArgs,
	RunE: runPassword,
}

func init() {
	passwordCmd.Flags().BoolVar(&passwordDelete, "delete", false, "Forget the stored password")
	rootCmd.AddCommand(passwordCmd)
}

func runPassword(cmd *cobra.Command, _ []string) error {
	if credentialsService == nil || settingsService == nil {
		return errors.New("credentials service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	account := settings.Remote.Account
	if account == "" {
		return errors.New("no account configured; run: timecard settings set remote.account <netid>")
	}

	if passwordDelete {
		if err := credentialsService.DeleteSecret(account); err != nil {
			return fmt.Errorf("failed to delete password: %w", err)
		}
		cmd.Printf("Password for %s removed.\n", account)
		return nil
	}

	cmd.Printf("Password for %s: ", account)
	password := readPassword()
	cmd.Println()
	if password == "" {
		return errors.New("password is empty")
	}
	if err := credentialsService.SetSecret(account, password); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}
	cmd.Printf("Password for %s stored.\n", account)
	return nil
}

func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
