package cmd

import (
	"github.com/spf13/cobra"

	"github.com/picogrid/vegca-inputs/pkg/logger"
	"github.com/picogrid/vegca-inputs/pkg/schema"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a parameter file against a schema",
		Long: `Parse a parameter file and check every value against the configured schema.
Parameters the schema does not declare are reported as warnings, or as errors
with --strict.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.inputPath(args)
			table, err := opts.loadTable(path)
			if err != nil {
				return err
			}

			s, err := opts.loadSchema()
			if err != nil {
				return err
			}

			log := logger.WithFields(map[string]interface{}{"file": path, "schema": s.Name})
			for _, issue := range s.Check(table, opts.settings.Strict) {
				if issue.Severity == schema.SeverityError {
					log.Error(issue.String())
				} else {
					log.Warn(issue.String())
				}
			}

			if err := s.Validate(table, opts.settings.Strict); err != nil {
				return err
			}

			logger.Successf("%s matches schema %s (%d parameters)", path, s.Name, table.Len())
			return nil
		},
	}
}
