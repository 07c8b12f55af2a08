package cmd

import (
	"fmt"
	"os"

	"github.com/bimmerbailey/logalizer/internal/config"
	"github.com/bimmerbailey/logalizer/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var settingsFile string

var rootCmd = &cobra.Command{
	Use:   "logalizer -c <config> -f <log> [-f <log|glob> ...]",
	Short: "Translate raw logs into condensed sequences",
	Long: `Logalizer condenses large trace logs into short, human readable
translation files driven by a configuration of pattern rules.

Each log is filtered, normalized and matched line by line; matched lines
are rendered through the rule's print template and de-duplicated. The
log itself is replaced by its trimmed copy and the translation is written
to the configured translation file.

Examples:
  logalizer -c config.json -f trace.log
  logalizer -c config.yaml -f "logs/*.log" --format table
  logalizer config-help --type yaml
  logalizer watch -c config.json -f trace.log`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runTranslate,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsFile, "settings", "", "settings file (default is $HOME/.logalizer.yaml)")
	flags.StringP("config", "c", "", "translation config file (default is <executable dir>/config.json)")
	flags.StringSliceP("file", "f", nil, "log file or glob to translate (repeatable)")
	flags.String("format", "text", "run summary format (text, json, table)")
	flags.CountP("verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("no-exec", false, "skip the configured execute commands")
	flags.String("metrics-file", "", "write prometheus metrics to this textfile")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("no_color", flags.Lookup("no-color"))
	_ = viper.BindPFlag("no_exec", flags.Lookup("no-exec"))
	_ = viper.BindPFlag("metrics_file", flags.Lookup("metrics-file"))
}

func initConfig() {
	if settingsFile != "" {
		viper.SetConfigFile(settingsFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".logalizer")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOGALIZER")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", 0)
	viper.SetDefault("no_color", false)
	viper.SetDefault("no_exec", false)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetInt("verbose") > 0 {
			fmt.Fprintln(os.Stderr, "Using settings file:", viper.ConfigFileUsed())
		}
	}
}

// loadSettings reads the merged flag, environment and settings file values.
func loadSettings() (config.Settings, error) {
	var s config.Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func setupLogging(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logging.SetupLogger(logging.Options{
		Verbosity: settings.Verbose,
		NoColor:   settings.NoColor,
		Out:       cmd.ErrOrStderr(),
	})
	return nil
}
