package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faizmokh/liftlog/internal/config"
	"github.com/faizmokh/liftlog/internal/exercise"
	"github.com/faizmokh/liftlog/internal/files"
	"github.com/faizmokh/liftlog/internal/logging"
	"github.com/faizmokh/liftlog/internal/render"
	"github.com/faizmokh/liftlog/internal/ui"
	"github.com/faizmokh/liftlog/internal/version"
)

// app carries what the root command resolves before any subcommand runs.
type app struct {
	dirFlag    string
	configFlag string
	verbose    bool

	unit   string
	logger *zap.Logger
	store  *exercise.Store
}

// setup loads config, builds the logger, and opens the store. --dir beats the
// config file and LIFTLOG_HOME; with neither set the store sits next to the binary.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFlag)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	dir := a.dirFlag
	if dir == "" {
		dir = cfg.DataDir
	}
	manager, err := files.NewManager(dir)
	if err != nil {
		return err
	}

	logger.Debug("store resolved", zap.String("dir", manager.BasePath()), zap.String("unit", cfg.Unit))
	a.unit = cfg.Unit
	a.logger = logger
	a.store = exercise.NewStore(manager, logger)
	return nil
}

func (a *app) printer(cmd *cobra.Command) *render.Printer {
	return render.New(cmd.OutOrStdout(), a.unit)
}

// NewRootCommand creates the top-level Cobra command. Run bare, it starts an
// interactive logging session.
func NewRootCommand(ctx context.Context) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     "liftlog",
		Short:   "Log workouts per exercise from your terminal.",
		Version: version.Info(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(ctx, cmd, a, "")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.dirFlag, "dir", "", "Exercise store directory (default: $LIFTLOG_HOME or ../training_log beside the binary)")
	flags.StringVar(&a.configFlag, "config", "", "Config file (default: $XDG_CONFIG_HOME/liftlog/config.yaml)")
	flags.BoolVar(&a.verbose, "verbose", false, "Log debug diagnostics to stderr")

	cmd.AddCommand(
		newLogCommand(ctx, a),
		newAddCommand(ctx, a),
		newDayCommand(ctx, a),
		newShowCommand(ctx, a),
		newListCommand(ctx, a),
		newIndexCommand(ctx, a),
		newExportCommand(ctx, a),
		newBrowseCommand(ctx, a),
	)

	return cmd
}

func newBrowseCommand(ctx context.Context, a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse exercises and their history in a terminal UI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ui.NewModel(ctx, a.store, a.unit)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
	}
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	return NewRootCommand(ctx).ExecuteContext(ctx)
}

// Main is a helper used by cmd/liftlog/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
