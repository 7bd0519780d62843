package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/faizmokh/liftlog/internal/exercise"
)

func newShowCommand(ctx context.Context, a *app) *cobra.Command {
	var (
		dateFlag string
		allFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "show <exercise>",
		Short: "Show the previous workout for an exercise.",
		Long: "show prints the workout logged on the target date if there is one, otherwise the " +
			"most recent workout. --all prints the whole history, newest first.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := exerciseName(args)
			slug := exercise.Slugify(title)
			if err := exercise.ValidateSlug(slug); err != nil {
				return err
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			rec, err := a.store.Load(ctx, slug)
			if err != nil {
				if errors.Is(err, exercise.ErrNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "No exercise named %q (%s.json)\n", title, slug)
					return nil
				}
				return err
			}

			p := a.printer(cmd)
			if allFlag {
				p.History(rec)
				return nil
			}
			p.Heading(rec.Metadata.Title)
			p.Previous(rec, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Prefer the workout on this date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Print every logged workout")

	return cmd
}

func newListCommand(ctx context.Context, a *app) *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "list [pattern]",
		Short: "List known exercises, optionally filtered by a glob on slug or title.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.store.Exercises(ctx)
			if err != nil {
				return err
			}

			pattern := ""
			if len(args) == 1 {
				pattern = strings.TrimSpace(args[0])
			}
			if pattern != "" {
				entries, err = filterExercises(entries, pattern)
				if err != nil {
					return err
				}
			}

			if outputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				if pattern != "" {
					fmt.Fprintf(out, "No exercises match %q\n", pattern)
				} else {
					fmt.Fprintln(out, "No exercises logged yet.")
				}
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%-24s %s\n", e.Slug, e.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Emit entries as JSON objects")

	return cmd
}

// filterExercises keeps entries whose slug or lowercased title matches pattern.
// Patterns are case-insensitive, so "bench*" finds "Bench Press".
func filterExercises(entries []exercise.IndexEntry, pattern string) ([]exercise.IndexEntry, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	matched := make([]exercise.IndexEntry, 0, len(entries))
	for _, e := range entries {
		if g.Match(e.Slug) || g.Match(strings.ToLower(e.Title)) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}
