// Command timecard keeps a daily time card and submits it to the remote
// time-card system.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/formdriver"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/formdriver/browser"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/formdriver/dryrun"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/secrets/keyring"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/secrets/prompt"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/timecard-cli/internal/core/services"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(initialise)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// initialise builds adapters and services once flags are parsed.
func initialise(_ context.Context, opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	created, err := settingsService.EnsureDefaults()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to write default config: %w", err)
	}
	if created {
		logger.Info("Wrote default configuration to %s", configStore.Path())
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.General.DBFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("Database: %s", store.Path())
	entries := store.EntryStore()

	credentialsService := services.NewCredentialsService(
		keyring.NewStore(settings.Remote.KeyringService),
		prompt.NewTerminal(os.Stdin, os.Stderr),
	)

	live := formdriver.ThrottleFactory(
		browser.FactoryFromSettings(settings.Remote),
		settings.Remote.ActionsPerSecond,
	)
	submissionService := services.NewSubmissionService(
		entries, settingsService, credentialsService, live, dryrun.NewFactory(),
	)

	release := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Close database: %v", err)
		}
	}

	return &cli.Services{
		TimeCard:    services.NewTimeCardService(entries, settingsService),
		Submission:  submissionService,
		Settings:    settingsService,
		Credentials: credentialsService,
		Watcher:     configStore,
		LogPath:     filepath.Join(filepath.Dir(configStore.Path()), "timecard.log"),
	}, release, nil
}
