package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

var submitDryRun bool

var submitCmd = &cobra.Command{
	Use:   "submit [date]",
	Short: "Submit a day's time card",
	Long: `Enter every entry of a day into the remote time-card system.

Entries are entered by descending workorder. Entries the remote system
rejects are reported at the end; the rest of the card is still saved.

The password is read from the system keychain. If none is stored you are
asked for it once and it is stored for next time.

With --dry-run nothing is sent; the actions that would be performed are
printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().BoolVarP(&submitDryRun, "dry-run", "n", false, "Print the actions instead of performing them")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if submissionService == nil {
		return errors.New("submission service not configured")
	}
	date, err := parseDateArg(args, 0)
	if err != nil {
		return err
	}
	if !submitDryRun && settingsService != nil {
		if err := settingsService.Validate(); err != nil {
			return fmt.Errorf("%w\nSet it with: timecard settings set <key> <value>", err)
		}
	}

	ctx := commandContext(cmd)
	var task driving.SubmissionTask
	if submitDryRun {
		task, err = submissionService.DryRun(ctx, date)
	} else {
		task, err = submissionService.Start(ctx, date)
	}
	if err != nil {
		return fmt.Errorf("failed to start submission: %w", err)
	}

	for ev := range task.Updates() {
		cmd.Println(ev.Message)
	}
	result, err := task.Wait(ctx)

	if submitDryRun {
		cmd.Println()
		for _, line := range result.Transcript {
			cmd.Printf("  %s\n", line)
		}
	}

	if errors.Is(err, domain.ErrEntryRejected) {
		cmd.Println("Fix the rejected entries in the remote system.")
	}
	return err
}
