package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/vegca-inputs/pkg/params"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var withType bool

	getCmd := &cobra.Command{
		Use:   "get <name> [file]",
		Short: "Print one parameter value",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.inputPath(args[1:])
			table, err := opts.loadTable(path)
			if err != nil {
				return err
			}

			entry, ok := table.Lookup(args[0])
			if !ok {
				return &params.Error{Kind: params.KindUnknownParameter, Path: path, Name: args[0]}
			}

			if withType {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.Value.Raw(), entry.Value.Kind())
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), entry.Value.Raw())
			}
			return err
		},
	}

	getCmd.Flags().BoolVarP(&withType, "type", "t", false, "print the inferred type after the value")
	return getCmd
}
