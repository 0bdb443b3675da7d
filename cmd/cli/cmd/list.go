package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/picogrid/vegca-inputs/pkg/logger"
	"github.com/picogrid/vegca-inputs/pkg/utils"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var pattern string

	listCmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List parameter files",
		Long:  `List all parameter files under a directory with their entry counts`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			// Discover parameter files
			files, err := utils.DiscoverParameterFiles(root, pattern)
			if err != nil {
				return fmt.Errorf("failed to discover parameter files: %w", err)
			}

			if len(files) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No parameter files found")
				return err
			}

			table := logger.NewTable("PATH", "ENTRIES", "STATUS")
			for _, f := range files {
				if f.Err != nil {
					table.AddRow(f.Path, "-", f.Err.Error())
					continue
				}
				table.AddRow(f.Path, strconv.Itoa(f.Entries), "ok")
			}
			table.Fprint(cmd.OutOrStdout())
			return nil
		},
	}

	listCmd.Flags().StringVarP(&pattern, "pattern", "p", utils.DefaultPattern, "file name glob")
	return listCmd
}
