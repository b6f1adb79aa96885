// Package cli provides the cobra command tree of the timecard binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// version is set by SetVersion from the build.
var version = "dev"

// Services injected by the composition root.
var (
	timeCardService    driving.TimeCardService
	submissionService  driving.SubmissionService
	settingsService    driving.SettingsService
	credentialsService driving.CredentialsService
	configWatcher      driven.ConfigWatcher
	logPath            string
)

// Global flags.
var (
	verbose   bool
	configDir string
	logFile   string
)

// Services groups everything the commands need.
type Services struct {
	TimeCard    driving.TimeCardService
	Submission  driving.SubmissionService
	Settings    driving.SettingsService
	Credentials driving.CredentialsService

	// Watcher signals configuration changes to the TUI. Optional.
	Watcher driven.ConfigWatcher

	// LogPath is where the TUI logs when no --log-file is given.
	LogPath string
}

// Options carries the global flags to the initializer.
type Options struct {
	Verbose   bool
	ConfigDir string
	LogFile   string
}

// Initializer builds the services once flags are parsed. The returned
// function releases them.
type Initializer func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	initializer Initializer
	release     func()
)

var rootCmd = &cobra.Command{
	Use:   "timecard",
	Short: "Keep a daily time card and submit it",
	Long: `timecard records the work you do each day as time-card entries and
submits a day's card to the remote time-card system.

Run without a command to open the interactive terminal UI.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: initialise,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.timecard)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append log output to this file")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetInitializer registers the function that builds the services.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetServices injects services directly, bypassing the initializer.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	timeCardService = s.TimeCard
	submissionService = s.Submission
	settingsService = s.Settings
	credentialsService = s.Credentials
	configWatcher = s.Watcher
	logPath = s.LogPath
}

// Execute runs the command tree.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the command tree with ctx. Cancelling ctx stops a
// running submission or the TUI.
func ExecuteContext(ctx context.Context) error {
	defer shutdown()
	return rootCmd.ExecuteContext(ctx)
}

func initialise(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())
	if logFile != "" {
		if err := logger.SetFile(logFile); err != nil {
			return err
		}
	}

	if initializer == nil {
		return nil
	}
	services, closeFn, err := initializer(cmd.Context(), Options{
		Verbose:   verbose,
		ConfigDir: configDir,
		LogFile:   logFile,
	})
	if err != nil {
		return err
	}
	SetServices(services)
	release = closeFn
	return nil
}

func shutdown() {
	if release != nil {
		release()
		release = nil
	}
	logger.Close()
}

// commandContext returns the command's context, or a background one
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// parseDateArg parses the date argument at index i, defaulting to today.
// "today" and "yesterday" are accepted as well as YYYY-MM-DD.
func parseDateArg(args []string, i int) (time.Time, error) {
	if len(args) <= i {
		return domain.Day(time.Now()), nil
	}
	return parseDate(args[i])
}

func parseDate(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return domain.Day(time.Now()), nil
	case "yesterday":
		return domain.Day(time.Now().AddDate(0, 0, -1)), nil
	}
	return domain.ParseDay(s)
}

func requireTimeCard() error {
	if timeCardService == nil {
		return errors.New("time card service not configured")
	}
	return nil
}

// printCard writes a day's entries as a table with the total.
func printCard(cmd *cobra.Command, card domain.TimeCard, target float64) {
	cmd.Printf("Time card %s (%s)\n\n", card.Date.Format(domain.DateLayout), card.Date.Weekday())
	if card.Len() == 0 {
		cmd.Println("  No entries.")
		return
	}
	cmd.Printf("  %-3s %-6s %-3s %6s  %-16s %-8s %s\n", "#", "WO", "PH", "HOURS", "ACTION", "CODE", "DESCRIPTION")
	for _, e := range card.Entries {
		cmd.Printf("  %-3d %-6s %-3s %6s  %-16s %-8s %s\n",
			e.LineItem, e.Workorder, e.Phase, formatHours(e.Hours), e.Action, e.TimeCode, e.Description)
	}

	total := fmt.Sprintf("%s h", formatHours(card.Hours()))
	if target > 0 && !card.MeetsTarget(target) {
		total += fmt.Sprintf(" (target %s h)", formatHours(target))
	}
	cmd.Printf("\n  Total: %s\n", total)
}

func formatHours(h float64) string {
	return domain.SubmissionLine{Hours: h}.HoursText()
}

// dailyTarget returns the configured daily hours, or zero.
func dailyTarget() float64 {
	if settingsService == nil {
		return 0
	}
	settings, err := settingsService.Get()
	if err != nil {
		return 0
	}
	return settings.General.DailyHours
}
