package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI shows one day's time card at a time. Entries can be added,
edited, copied between days and submitted without leaving it.

Controls:
  [ / ]    - Previous / next day
  a, enter - Add / edit an entry
  s        - Submit the day
  /        - Find entries
  ,        - Settings
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Log output would draw over the screen.
	switch {
	case logFile != "":
	case logPath != "":
		if err := logger.SetFile(logPath); err != nil {
			return err
		}
	default:
		logger.SetOutput(io.Discard)
	}

	ports := tui.NewPorts(timeCardService, submissionService, settingsService)
	ports.Credentials = credentialsService
	ports.Watcher = configWatcher

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	logger.Info("starting TUI")
	if err := app.WithContext(commandContext(cmd)).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
