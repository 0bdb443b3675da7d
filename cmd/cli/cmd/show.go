package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var showDescriptions bool

	showCmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Show every parameter in a file",
		Long:  `Show the parameters of a file in file order with their inferred types`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.loadTable(opts.inputPath(args))
			if err != nil {
				return err
			}

			// Create tabwriter for formatted output
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if showDescriptions {
				_, _ = fmt.Fprintln(w, "NAME\tTYPE\tVALUE\tDESCRIPTION")
				_, _ = fmt.Fprintln(w, "----\t----\t-----\t-----------")
			} else {
				_, _ = fmt.Fprintln(w, "NAME\tTYPE\tVALUE")
				_, _ = fmt.Fprintln(w, "----\t----\t-----")
			}

			for _, e := range table.Entries() {
				if showDescriptions {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Value.Kind(), e.Value.Raw(), e.Description)
				} else {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Value.Kind(), e.Value.Raw())
				}
			}

			return w.Flush()
		},
	}

	showCmd.Flags().BoolVarP(&showDescriptions, "descriptions", "d", false, "include parameter descriptions")
	return showCmd
}
