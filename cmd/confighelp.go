package cmd

import (
	"fmt"
	"strings"

	"github.com/bimmerbailey/logalizer/internal/config"
	"github.com/spf13/cobra"
)

var configHelpCmd = &cobra.Command{
	Use:   "config-help",
	Short: "Print a sample translation configuration",
	Long: `Print an annotated sample configuration in the chosen format.

JSON, YAML and TOML configs are equivalent. A CSV translation table can
be referenced from any of them with "translations_csv".

Path values may use ${fileDirname}, ${fileBasename},
${fileBasenameNoExtension} and ${exeDirname}.

Examples:
  logalizer config-help > config.json
  logalizer config-help --type yaml
  logalizer config-help --type csv > translations.csv`,
	Args: cobra.NoArgs,
	// Logging setup is not needed to print a sample.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runConfigHelp,
}

func init() {
	configHelpCmd.Flags().StringP("type", "t", "json", fmt.Sprintf("sample format (%s)", strings.Join(config.SampleFormats(), ", ")))
	rootCmd.AddCommand(configHelpCmd)
}

func runConfigHelp(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("type")
	sample, err := config.Sample(strings.ToLower(format))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), sample)
	return err
}
