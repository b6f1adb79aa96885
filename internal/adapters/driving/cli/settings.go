package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in the configuration file.

Keys use dot notation as in the file, for example:
  timecard settings set remote.account jdoe
  timecard settings set remote.employee_id 12345
  timecard settings set general.theme fancy
  timecard settings set controls.save mainForm:buttonPanel:save`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or set the UI theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsTheme,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsThemeCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[General]")
	cmd.Printf("  Database: %s\n", settings.General.DBFile)
	cmd.Printf("  Theme: %s\n", settings.General.Theme.Description())
	cmd.Printf("  Daily hours: %s\n", formatHours(settings.General.DailyHours))
	cmd.Println()

	remote := settings.Remote
	cmd.Println("[Remote]")
	cmd.Printf("  Account: %s\n", orNotSet(remote.Account))
	cmd.Printf("  Employee ID: %s\n", orNotSet(remote.EmployeeID))
	cmd.Printf("  Password: %s\n", passwordStatus(remote.Account))
	cmd.Printf("  Base URL: %s\n", remote.BaseURL)
	cmd.Printf("  Login marker: %s\n", remote.LoginMarker)
	cmd.Printf("  Date format: %s\n", remote.DateFormat)
	cmd.Printf("  Timeouts: %ds per action, %ds for login\n", remote.TimeoutSeconds, remote.LoginTimeoutSeconds)
	cmd.Printf("  Settle: %dms\n", remote.SettleMillis)
	if remote.ActionsPerSecond > 0 {
		cmd.Printf("  Throttle: %d actions/s\n", remote.ActionsPerSecond)
	} else {
		cmd.Printf("  Throttle: off\n")
	}
	cmd.Printf("  Headless: %t\n", remote.Headless)
	status := "configured"
	if !remote.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Templates]")
	for _, t := range settings.Templates {
		cmd.Printf("  %-6s %-3s %6s  %-16s %-3s %s\n",
			t.Workorder, t.Phase, formatHours(t.Hours), t.Action, t.TimeCode, t.Description)
	}
	cmd.Println()

	defaults := domain.DefaultFormControls()
	var overridden bool
	cmd.Println("[Controls]")
	for _, name := range domain.ControlNames() {
		id, _ := settings.Controls.Lookup(name)
		if def, _ := defaults.Lookup(name); id != def {
			cmd.Printf("  %s: %s\n", name, id)
			overridden = true
		}
	}
	if !overridden {
		cmd.Println("  (defaults)")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsTheme(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if len(args) == 0 {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		for _, theme := range domain.AllThemes() {
			marker := " "
			if theme == settings.General.Theme {
				marker = "*"
			}
			cmd.Printf("%s %-12s %s\n", marker, theme, theme.Description())
		}
		return nil
	}

	if err := settingsService.SetTheme(domain.Theme(args[0])); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}
	cmd.Printf("Theme set to %s\n", args[0])
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func passwordStatus(account string) string {
	if credentialsService == nil || account == "" {
		return "(unknown)"
	}
	has, err := credentialsService.HasSecret(account)
	switch {
	case err != nil:
		return "(keychain unavailable)"
	case has:
		return "stored in keychain"
	default:
		return "(not set)"
	}
}
