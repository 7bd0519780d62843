package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faizmokh/liftlog/internal/exercise"
	"github.com/faizmokh/liftlog/internal/export"
)

func newIndexCommand(ctx context.Context, a *app) *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild index.json from the exercise files.",
		Long: "index regenerates index.json. With --watch it keeps running and rebuilds whenever " +
			"an exercise file changes, until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			indexPath := a.store.Manager().IndexPath()

			if !watchFlag {
				entries, err := a.store.RebuildIndex(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Indexed %s in %s\n", plural(len(entries), "exercise"), indexPath)
				return nil
			}

			watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", a.store.Manager().BasePath())
			return a.store.WatchIndex(watchCtx, func(entries []exercise.IndexEntry, err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "index not rebuilt: %v\n", err)
					return
				}
				fmt.Fprintf(out, "Indexed %s in %s\n", plural(len(entries), "exercise"), indexPath)
			})
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Keep rebuilding as exercise files change")

	return cmd
}

func newExportCommand(ctx context.Context, a *app) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export --out <file.db>",
		Short: "Copy every exercise into a SQLite database.",
		Long: "export rebuilds the exercises and workouts tables in the target database. The JSON " +
			"files remain the source of truth.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFlag == "" {
				return fmt.Errorf("--out is required")
			}

			summary, err := export.ToSQLite(ctx, a.store, outFlag)
			if err != nil {
				return err
			}
			if a.logger != nil {
				a.logger.Debug("export finished", zap.String("path", outFlag), zap.Int("sets", summary.Sets))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s, %s, %s to %s\n",
				plural(summary.Exercises, "exercise"),
				plural(summary.Workouts, "workout"),
				plural(summary.Sets, "set"),
				outFlag,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Path of the SQLite database to write")

	return cmd
}
