package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/liftlog/internal/session"
)

func newLogCommand(ctx context.Context, a *app) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a workout interactively, one exercise at a time.",
		Long: "log prompts for a date, then for exercises and their sets. A blank exercise name " +
			"ends the session and rebuilds index.json.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(ctx, cmd, a, dateFlag)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Workout date in YYYY-MM-DD (default: prompt, today on Enter)")

	return cmd
}

func runSession(ctx context.Context, cmd *cobra.Command, a *app, date string) error {
	if date != "" {
		if _, err := resolveDate(date); err != nil {
			return err
		}
	}
	s := session.New(a.store, cmd.InOrStdin(), cmd.OutOrStdout(), session.Options{
		Date: date,
		Unit: a.unit,
	})
	_, err := s.Run(ctx)
	return err
}

func newAddCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag    string
		setFlags    []string
		musclesFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <exercise> --set WEIGHTxREPS [--set ...]",
		Short: "Record sets for one exercise without prompting.",
		Long: "add appends one workout to the exercise's log. Sets are given in performed order. " +
			"--muscles only applies when the exercise is new.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := exerciseName(args)
			if title == "" {
				return fmt.Errorf("exercise name is required")
			}
			if len(setFlags) == 0 {
				return fmt.Errorf("at least one --set is required")
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}
			sets, err := parseSets(setFlags)
			if err != nil {
				return err
			}

			res, err := a.store.Log(ctx, title, session.ParseMuscles(musclesFlag), date, sets)
			if err != nil {
				return err
			}
			if _, err := a.store.RebuildIndex(ctx); err != nil {
				return err
			}

			p := a.printer(cmd)
			if res.Created {
				fmt.Fprintf(p.Out(), "Creating new exercise: %s\n", res.Record.Metadata.Title)
			} else {
				fmt.Fprintf(p.Out(), "Logging: %s\n", res.Record.Metadata.Title)
			}
			p.Sets("  ", sets)
			p.Success(fmt.Sprintf("Saved to %s.json (%s)", res.Slug, date))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Workout date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringArrayVarP(&setFlags, "set", "s", nil, "One set as WEIGHTxREPS; repeat for more sets")
	cmd.Flags().StringVar(&musclesFlag, "muscles", "", `Comma-separated muscles for a new exercise, e.g. "Chest, Triceps"`)

	return cmd
}
