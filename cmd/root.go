// =============================================================================
// SDE Types Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Running the binary
// with no arguments performs the conversion using the working-directory
// conventions (./sde.zip -> ./types.json.gz).
//
// COBRA CLI STRUCTURE:
//   rootCmd (sdeconv)          - convert the type catalog
//   └── versionCmd (sdeconv version)
//
// CONFIGURATION:
//   Flags are bound into a viper instance together with SDECONV_* environment
//   variables and the optional sdeconv.yaml config file. See internal/config
//   for precedence.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/sde-types-converter/internal/config"
	"github.com/ginjaninja78/sde-types-converter/internal/converter"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to an explicit configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"input":     "input",
	"output":    "output",
	"entry":     "entry",
	"report":    "report",
	"sort":      "sort_by_id",
	"log-level": "log_level",
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sdeconv",
	Short: "Export market types from the EVE SDE to gzip-compressed JSON",
	Long: `sdeconv reads fsd/types.yaml from the static data export archive, keeps
every type that has a marketGroupID, and writes them as a compact JSON array
of {"id", "name", "groupID"} objects compressed with gzip.

With no flags it reads ./sde.zip and writes ./types.json.gz.

Example Usage:
  sdeconv                                  # convert using the defaults
  sdeconv -i dumps/sde.zip -o out/types.json.gz
  sdeconv --report types.xlsx              # also write a review workbook
  sdeconv --sort=false                     # keep source key order`,

	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main(). Any failure
// is reported on stderr and exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	d := config.Defaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Path to a config file (default is ./sdeconv.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	flags := rootCmd.Flags()
	flags.StringP("input", "i", d.Input, "Path to the SDE zip archive")
	flags.StringP("output", "o", d.Output, "Path of the gzip-compressed JSON output")
	flags.String("entry", d.Entry, "Archive entry holding the type catalog")
	flags.String("report", "", "Also write an XLSX review workbook to this path")
	flags.Bool("sort", d.SortByID, "Sort the output by id")
	flags.String("log-level", d.LogLevel, "Log level: debug, info, warn, error")
}

// bindFlags binds the conversion flags into v.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// =============================================================================
// CONVERSION
// =============================================================================

// runConvert loads the configuration and runs the pipeline.
func runConvert(cmd *cobra.Command) error {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return err
	}

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	if verbose {
		v.Set("log_level", "debug")
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := converter.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}

	result, err := converter.New(cfg, logger).Run()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d types to %s\n",
		result.Stats.RecordsExported, result.Stats.RecordsParsed, result.OutputFile)
	if result.ReportFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", result.ReportFile)
	}

	return nil
}
