package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show the time card of a day",
	Long: `Show the entries of a day with their total hours.

The date is YYYY-MM-DD, "today" or "yesterday". It defaults to today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDay,
}

var repairCmd = &cobra.Command{
	Use:   "repair [date]",
	Short: "Renumber the line items of a day",
	Long: `Rewrite the line items of a day as 0..n-1 in their current order.

Days are always shown densely numbered; repair persists that numbering.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepair,
}

func init() {
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(repairCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	if err := requireTimeCard(); err != nil {
		return err
	}
	date, err := parseDateArg(args, 0)
	if err != nil {
		return err
	}

	card, err := timeCardService.Day(commandContext(cmd), date)
	if err != nil {
		return fmt.Errorf("failed to load day: %w", err)
	}
	printCard(cmd, card, dailyTarget())
	return nil
}

func runRepair(cmd *cobra.Command, args []string) error {
	if err := requireTimeCard(); err != nil {
		return err
	}
	date, err := parseDateArg(args, 0)
	if err != nil {
		return err
	}

	card, err := timeCardService.Repair(commandContext(cmd), date)
	if err != nil {
		return fmt.Errorf("failed to repair day: %w", err)
	}
	cmd.Printf("Renumbered %d entries.\n\n", card.Len())
	printCard(cmd, card, dailyTarget())
	return nil
}
