package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/formdriver/dryrun"
	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/timecard-cli/internal/core/services"
)

const testDate = "2024-03-04"

// setupTestServices wires real services over in-memory stores. The
// remote driver only records what it would do.
func setupTestServices(t *testing.T) *Services {
	t.Helper()

	settings := services.NewSettingsService(memory.NewConfigStore())
	_, err := settings.EnsureDefaults()
	require.NoError(t, err)
	require.NoError(t, settings.SetRemote("jdoe", "12345"))
	require.NoError(t, settings.Set("remote.settle_millis", "0"))

	secrets := memory.NewSecretStore()
	require.NoError(t, secrets.Set("jdoe", "hunter2"))
	credentials := services.NewCredentialsService(secrets, nil)

	entries := memory.NewEntryStore()
	recorder := dryrun.NewFactory()
	submission := services.NewSubmissionService(entries, settings, credentials, recorder, recorder)
	submission.PollInterval = time.Millisecond

	s := &Services{
		TimeCard:    services.NewTimeCardService(entries, settings),
		Submission:  submission,
		Settings:    settings,
		Credentials: credentials,
	}
	SetServices(s)
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
	})
	return s
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the command tree with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
