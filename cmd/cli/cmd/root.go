package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/vegca-inputs/pkg/config"
	"github.com/picogrid/vegca-inputs/pkg/logger"
	"github.com/picogrid/vegca-inputs/pkg/params"
	"github.com/picogrid/vegca-inputs/pkg/schema"
)

// rootOptions carries the global flags and the settings resolved from them
type rootOptions struct {
	cfgFile string
	sets    []string

	v        *viper.Viper
	settings *config.Settings
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "vegca",
		Short: "Vegetation CA parameter file tool",
		Long: `vegca reads, validates, edits and exports the parameter files consumed by
the vegetation cellular automaton simulation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.initConfig(cmd)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.vegca/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("schema", schema.VegetationCA, "schema name or path to a schema YAML file")
	flags.Bool("strict", false, "treat parameters the schema does not declare as errors")
	flags.StringArrayVar(&opts.sets, "set", nil, "override a parameter value (name=value, repeatable)")

	_ = opts.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = opts.v.BindPFlag("no_color", flags.Lookup("no-color"))
	_ = opts.v.BindPFlag("schema", flags.Lookup("schema"))
	_ = opts.v.BindPFlag("strict", flags.Lookup("strict"))

	// Add commands
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newGetCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newSummaryCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newEditCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newSchemaCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// initConfig reads in config file and ENV variables if set
func (o *rootOptions) initConfig(cmd *cobra.Command) error {
	config.Init(o.v, o.cfgFile)

	settings, err := config.Load(o.v)
	if err != nil {
		return err
	}
	o.settings = settings

	// Configure logger based on flags. Logs go to stderr so stdout stays parseable.
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logger.ParseLevel(settings.LogLevel))
	logger.SetNoColor(settings.NoColor)

	if used := o.v.ConfigFileUsed(); used != "" {
		logger.Debugf("Using config file %s", used)
	}
	return nil
}

// inputPath returns the file named on the command line, or the configured default
func (o *rootOptions) inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.settings.Inputs
}

// loadTable reads path and applies VEGCA_PARAM_* and --set overrides on top
func (o *rootOptions) loadTable(path string) (*params.Table, error) {
	table, err := params.ReadFile(path)
	if err != nil {
		return nil, err
	}

	overrides, err := o.overrides(table)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return table, nil
	}

	logger.WithFields(map[string]interface{}{
		"file":      path,
		"overrides": len(overrides),
	}).Debug("Applying parameter overrides")

	table, err = table.WithOverrides(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}
	return table, nil
}

// overrides merges VEGCA_PARAM_* variables and --set flags for the parameters of table
func (o *rootOptions) overrides(table *params.Table) (map[string]string, error) {
	envOverrides, err := config.EnvOverrides(nil, table.Names())
	if err != nil {
		return nil, err
	}
	cliOverrides, err := config.ParseSetFlags(o.sets)
	if err != nil {
		return nil, err
	}
	return config.MergeOverrides(envOverrides, cliOverrides), nil
}

// loadSchema resolves the configured schema
func (o *rootOptions) loadSchema() (*schema.Schema, error) {
	return schema.Resolve(o.settings.Schema)
}
