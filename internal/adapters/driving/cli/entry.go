package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

// entryFlags holds the field flags shared by add and edit.
type entryFlags struct {
	workorder   string
	phase       string
	hours       float64
	description string
	action      string
	code        string
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.workorder, "workorder", "w", "", "Workorder number (zero-padded to 6 digits)")
	cmd.Flags().StringVarP(&f.phase, "phase", "p", "", "Phase number (zero-padded to 3 digits)")
	cmd.Flags().Float64VarP(&f.hours, "hours", "H", 0, "Hours worked")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description of the work")
	cmd.Flags().StringVarP(&f.action, "action", "a", "", "Action: work-complete, active/ongoing, initial-respond, overhead")
	cmd.Flags().StringVarP(&f.code, "code", "c", "", "Time code (R, CP, OT, A, S, PH, CT, ASG, HOLIDAY, HOMEWORK)")
}

// apply sets the fields whose flags were given on entry.
func (f *entryFlags) apply(cmd *cobra.Command, entry *domain.Entry) error {
	flags := cmd.Flags()
	if flags.Changed("workorder") {
		entry.Workorder = f.workorder
	}
	if flags.Changed("phase") {
		entry.Phase = f.phase
	}
	if flags.Changed("hours") {
		entry.Hours = f.hours
	}
	if flags.Changed("description") {
		entry.Description = f.description
	}
	if flags.Changed("action") {
		action, err := domain.ParseAction(f.action)
		if err != nil {
			return err
		}
		entry.Action = action
	}
	if flags.Changed("code") {
		code, err := domain.ParseTimeCode(f.code)
		if err != nil {
			return err
		}
		entry.TimeCode = code
	}
	return nil
}

var (
	addFlags  entryFlags
	editFlags entryFlags
)

var addCmd = &cobra.Command{
	Use:   "add [date]",
	Short: "Append an entry to a day",
	Long: `Append an entry as the last line of a day.

Example:
  timecard add 2024-03-04 -w 32 -p 39 -H 0.5 -a overhead -d BREAK`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <date> <line>",
	Short: "Change fields of an entry",
	Long:  `Change the fields of an entry given as flags; other fields keep their values.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm <date> <line>",
	Aliases: []string{"delete"},
	Short:   "Remove an entry",
	Long:    `Remove an entry. The following entries of the day move up one line.`,
	Args:    cobra.ExactArgs(2),
	RunE:    runRm,
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults [date]",
	Short: "Append the default entries to a day",
	Long: `Append every configured entry template to a day.

Templates are the [[templates]] tables of the configuration file. Without
any, a break and a lead-work overhead entry are added.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDefaults,
}

var copyCmd = &cobra.Command{
	Use:   "copy <date> <line> <to-date>",
	Short: "Copy an entry to another day",
	Args:  cobra.ExactArgs(3),
	RunE:  runCopy,
}

func init() {
	addFlags.bind(addCmd)
	editFlags.bind(editCmd)

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(copyCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := requireTimeCard(); err != nil {
		return err
	}
	date, err := parseDateArg(args, 0)
	if err != nil {
		return err
	}

	entry := domain.Entry{TimeCode: domain.TimeCodeRegular}
	if err := addFlags.apply(cmd, &entry); err != nil {
		return err
	}
	added, err := timeCardService.Append(commandContext(cmd), date, entry)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	cmd.Printf("Added %s\n", added.Key())
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	if err := requireTimeCard(); err != nil {
		return err
	}
	date, line, err := parseEntryKey(args[0], args[1])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	entry, err := timeCardService.Get(ctx, date, line)
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}
	if err := editFlags.apply(cmd, entry); err != nil {
		return err
	}
	if err := timeCardService.Update(ctx, *entry); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	cmd.Printf("Updated %s\n", entry.Key())
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	if err := requireTimeCard(); err != nil {
		return err
	}
	date, line, err := parseEntryKey(args[0], args[1])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if _, err := timeCardService.Get(ctx, date, line); err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}
	if err := timeCardService.Delete(ctx, date, line); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}
	cmd.Printf("Removed %s#%d\n", date.Format(domain.DateLayout), line)
	return nil
}

func runDefaults(cmd *cobra.Command, args []string) error {
	if err := requireTimeCard(); err != nil {
		return err
	}
	date, err := parseDateArg(args, 0)
	if err != nil {
		return err
	}

	card, err := timeCardService.AddDefaults(commandContext(cmd), date)
	if err != nil {
		return fmt.Errorf("failed to add defaults: %w", err)
	}
	printCard(cmd, card, dailyTarget())
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	if err := requireTimeCard(); err != nil {
		return err
	}
	date, line, err := parseEntryKey(args[0], args[1])
	if err != nil {
		return err
	}
	target, err := parseDate(args[2])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	clip, err := timeCardService.Copy(ctx, date, line)
	if err != nil {
		return fmt.Errorf("failed to copy entry: %w", err)
	}
	pasted, err := timeCardService.Paste(ctx, clip, target)
	if err != nil {
		return fmt.Errorf("failed to paste entry: %w", err)
	}
	cmd.Printf("Copied to %s\n", pasted.Key())
	return nil
}

func parseEntryKey(dateArg, lineArg string) (date time.Time, line int, err error) {
	date, err = parseDate(dateArg)
	if err != nil {
		return date, 0, err
	}
	line, err = strconv.Atoi(lineArg)
	if err != nil || line < 0 {
		return date, 0, fmt.Errorf("%w: line %q must be a non-negative number", domain.ErrInvalidInput, lineArg)
	}
	return date, line, nil
}
