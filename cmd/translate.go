package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bimmerbailey/logalizer/internal/config"
	"github.com/bimmerbailey/logalizer/internal/hooks"
	"github.com/bimmerbailey/logalizer/internal/logging"
	"github.com/bimmerbailey/logalizer/internal/metrics"
	"github.com/bimmerbailey/logalizer/internal/output"
	"github.com/bimmerbailey/logalizer/internal/translate"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// defaultConfigName is looked up next to the executable when -c is not given.
const defaultConfigName = "config.json"

// run carries everything needed to translate a batch of logs.
type run struct {
	fs         afero.Fs
	configPath string
	settings   config.Settings
	collector  *metrics.Collector
	stdout     io.Writer
	stderr     io.Writer
	// backups maps each log to the backup this run created for it. A non-nil
	// map makes later passes restore the log from that backup first.
	backups map[string]string
}

func newRun(cmd *cobra.Command) (*run, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	r := &run{
		fs:         afero.NewOsFs(),
		configPath: resolveConfigPath(settings.Config),
		settings:   settings,
		stdout:     cmd.OutOrStdout(),
		stderr:     cmd.ErrOrStderr(),
	}
	if settings.MetricsFile != "" {
		r.collector = metrics.NewCollector(nil)
	}

	if ok, _ := afero.Exists(r.fs, r.configPath); !ok {
		return nil, fmt.Errorf("config file not found: %s", r.configPath)
	}
	return r, nil
}

func resolveConfigPath(path string) string {
	if path == "" {
		return filepath.Join(config.ExeDir(), defaultConfigName)
	}
	return path
}

// logFiles collects -f values and positional arguments, expanding globs.
func logFiles(cmd *cobra.Command, args []string, fs afero.Fs) ([]string, error) {
	patterns, _ := cmd.Flags().GetStringSlice("file")
	patterns = append(patterns, args...)
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no log files given, use -f <file>")
	}
	return config.ExpandGlobs(fs, patterns)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	r, err := newRun(cmd)
	if err != nil {
		return err
	}
	files, err := logFiles(cmd, args, r.fs)
	if err != nil {
		return err
	}
	return r.translateAll(cmd.Context(), files)
}

// translateAll translates files in order, prints the summary and writes
// metrics. It fails if any file failed.
func (r *run) translateAll(ctx context.Context, files []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reports := make([]output.Report, 0, len(files))
	failed := 0
	for _, file := range files {
		report := r.translateLog(ctx, file)
		if report.Status == output.StatusFailed {
			failed++
		}
		reports = append(reports, report)
	}

	writer := output.New(r.stdout, output.ParseFormat(r.settings.Format)).
		WithColor(output.ParseColorMode(r.settings.NoColor))
	if err := writer.WriteReports(reports); err != nil {
		return err
	}

	if r.collector != nil {
		if err := r.collector.WriteTextfile(r.settings.MetricsFile); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(files))
	}
	return nil
}

// translateLog loads the config for file, backs it up, translates it and
// runs the configured commands.
func (r *run) translateLog(ctx context.Context, file string) output.Report {
	base := logging.GetLogger("translate")
	logger := base.With().Str("file", file).Logger()
	done := logging.LogOperationStart(logger, "translate")
	defer done()

	cfg, err := config.Open(r.fs, r.configPath).Load(config.NewPathVars(file))
	if err != nil {
		return output.NewReport(file, nil, err)
	}

	if backup, ok := r.backups[file]; ok {
		if restored, err := hooks.Restore(backup, file); err != nil {
			logger.Warn().Err(err).Msg("Could not restore log from backup")
		} else if restored {
			logger.Debug().Str("backup", backup).Msg("Restored log from backup")
		}
	}

	backedUp, err := hooks.Backup(file, cfg.BackupFile)
	if err != nil {
		logger.Warn().Err(err).Msg("Backup failed, continuing")
	}
	if backedUp && r.backups != nil {
		r.backups[file] = cfg.BackupFile
	}

	var recorder translate.Recorder
	if r.collector != nil {
		recorder = r.collector
	}
	// TranslateFile adds the file field itself.
	result, err := translate.New(cfg, translate.Options{
		Fs:       r.fs,
		Logger:   &base,
		Recorder: recorder,
	}).TranslateFile(file)

	report := output.NewReport(file, result, err)
	report.BackedUp = backedUp
	if err != nil || len(cfg.Execute) == 0 {
		return report
	}

	if r.settings.NoExec {
		logger.Info().Int("commands", len(cfg.Execute)).Msg("Skipping execute commands")
		return report
	}
	runner := &hooks.Runner{Stdout: r.stdout, Stderr: r.stderr, Logger: &logger}
	if output.ParseFormat(r.settings.Format) == output.FormatJSON {
		// Keep stdout parseable.
		runner.Stdout = r.stderr
	}
	report.CommandFailures = runner.Run(ctx, cfg.Execute)
	return report
}
