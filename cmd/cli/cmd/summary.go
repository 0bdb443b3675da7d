package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/vegca-inputs/pkg/vegca"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [file]",
		Short: "Summarize the simulation inputs",
		Long:  `Bind the parameters to the vegetation CA inputs, check them for consistency and print a summary`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.loadTable(opts.inputPath(args))
			if err != nil {
				return err
			}

			inputs, err := vegca.FromTable(table)
			if err != nil {
				return fmt.Errorf("failed to read inputs: %w", err)
			}
			if err := inputs.Validate(); err != nil {
				return fmt.Errorf("invalid inputs: %w", err)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), inputs.String())
			return err
		},
	}
}
