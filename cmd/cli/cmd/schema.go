package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/picogrid/vegca-inputs/pkg/schema"
)

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	var raw bool

	schemaCmd := &cobra.Command{
		Use:   "schema [name]",
		Short: "List schemas or show the parameters one declares",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 && !cmd.Flags().Changed("raw") {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintln(w, "NAME\tVERSION\tPARAMETERS\tDESCRIPTION")
				_, _ = fmt.Fprintln(w, "----\t-------\t----------\t-----------")
				for _, name := range schema.DefaultRegistry.List() {
					s, err := schema.DefaultRegistry.Get(name)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.Name, s.Version, len(s.Parameters), s.Description)
				}
				return w.Flush()
			}

			ref := opts.settings.Schema
			if len(args) > 0 {
				ref = args[0]
			}

			if raw {
				if ref != schema.VegetationCA {
					return fmt.Errorf("--raw is only available for the built-in %s schema", schema.VegetationCA)
				}
				_, err := out.Write(schema.BuiltinYAML())
				return err
			}

			s, err := schema.Resolve(ref)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tTYPE\tREQUIRED\tRANGE\tUNIT\tDESCRIPTION")
			_, _ = fmt.Fprintln(w, "----\t----\t--------\t-----\t----\t-----------")
			for _, p := range s.Parameters {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\t%s\n", p.Name, p.Type, p.Required, paramRange(p), p.Unit, p.Description)
			}
			return w.Flush()
		},
	}

	schemaCmd.Flags().BoolVar(&raw, "raw", false, "print the built-in schema document")
	return schemaCmd
}

func paramRange(p schema.Parameter) string {
	if len(p.Options) > 0 {
		return strings.Join(p.Options, "|")
	}
	bound := func(b *float64) string {
		if b == nil {
			return ""
		}
		return strconv.FormatFloat(*b, 'g', -1, 64)
	}
	if p.Min == nil && p.Max == nil {
		return "-"
	}
	return "[" + bound(p.Min) + ", " + bound(p.Max) + "]"
}
