package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bimmerbailey/logalizer/internal/logging"
	"github.com/bimmerbailey/logalizer/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch -c <config> -f <log> [-f <log|glob> ...]",
	Short: "Re-translate logs whenever the config changes",
	Long: `Translate the given logs once, then translate them again every time the
translation config file is saved. Useful while writing rules.

When the first pass creates a backup_file, later passes restore the log
from it before translating, so lines deleted by an earlier config come
back. A backup left over from an earlier run is never restored.

Examples:
  logalizer watch -c config.json -f trace.log
  logalizer watch -c config.yaml -f "logs/*.log" --no-exec`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	r, err := newRun(cmd)
	if err != nil {
		return err
	}
	files, err := logFiles(cmd, args, r.fs)
	if err != nil {
		return err
	}
	r.backups = make(map[string]string)

	logger := logging.GetLogger("watch")

	// Set up context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	translateAll := func(ctx context.Context) error {
		return r.translateAll(ctx, files)
	}
	if err := translateAll(ctx); err != nil {
		logger.Error().Err(err).Msg("Initial translation failed")
	}

	return watch.New(watch.Options{
		FilePath: r.configPath,
		OnChange: translateAll,
		Logger:   &logger,
	}).Run(ctx)
}
