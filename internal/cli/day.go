package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newDayCommand(ctx context.Context, a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show every exercise logged today or on a specific date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			summary, err := a.store.ListForDate(ctx, date)
			if err != nil {
				return err
			}
			a.printer(cmd).DaySummary(date, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
