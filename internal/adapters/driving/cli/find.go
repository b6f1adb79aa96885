package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
)

var (
	findFrom string
	findTo   string
)

var findCmd = &cobra.Command{
	Use:   "find [text]",
	Short: "Search entry descriptions",
	Long: `List entries whose description contains the text, ignoring case.

Without --from the search starts on 2019-01-01; without --to it ends today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&findFrom, "from", "", "First date searched (YYYY-MM-DD)")
	findCmd.Flags().StringVar(&findTo, "to", "", "Last date searched (YYYY-MM-DD)")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	if err := requireTimeCard(); err != nil {
		return err
	}

	query := driving.FindQuery{}
	if len(args) > 0 {
		query.Text = args[0]
	}
	var err error
	if query.From, err = optionalDate(findFrom); err != nil {
		return err
	}
	if query.To, err = optionalDate(findTo); err != nil {
		return err
	}

	entries, err := timeCardService.Find(commandContext(cmd), query)
	if err != nil {
		return fmt.Errorf("failed to search entries: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No matching entries.")
		return nil
	}

	var total float64
	for _, e := range entries {
		cmd.Printf("  %s #%-2d %-6s %-3s %6s  %s\n",
			e.WorkDate.Format(domain.DateLayout), e.LineItem, e.Workorder, e.Phase, formatHours(e.Hours), e.Description)
		total += e.Hours
	}
	cmd.Printf("\n%d entries, %s h\n", len(entries), formatHours(total))
	return nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return parseDate(s)
}
