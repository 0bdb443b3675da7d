package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/picogrid/vegca-inputs/pkg/logger"
	"github.com/picogrid/vegca-inputs/pkg/manifest"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export parameters as a run manifest",
		Long: `Export the parameters, after overrides, as a YAML, TOML or JSON manifest tagged
with a fresh run id. The format defaults to the output file extension, then to the
export_format setting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.inputPath(args)
			table, err := opts.loadTable(path)
			if err != nil {
				return err
			}

			outFormat, err := exportFormat(cmd, format, output, opts.settings.ExportFormat)
			if err != nil {
				return err
			}

			m := manifest.New(path, opts.settings.Schema, table)

			if output == "" {
				return m.Encode(cmd.OutOrStdout(), outFormat)
			}

			var buf bytes.Buffer
			if err := m.Encode(&buf, outFormat); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
				return fmt.Errorf("error creating directory: %w", err)
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("error writing manifest: %w", err)
			}

			logger.WithField("run_id", m.RunID).Infof("%s Exported %d parameters to %s", logger.IconFile, table.Len(), output)
			return nil
		},
	}

	exportCmd.Flags().StringVarP(&format, "format", "f", "", "manifest format (yaml, toml, json)")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "write the manifest to this file instead of stdout")
	return exportCmd
}

// exportFormat picks the manifest format: the --format flag, then the output
// extension, then the configured default.
func exportFormat(cmd *cobra.Command, flag, output, fallback string) (string, error) {
	if cmd.Flags().Changed("format") {
		switch flag {
		case manifest.FormatYAML, manifest.FormatTOML, manifest.FormatJSON:
			return flag, nil
		}
		return "", fmt.Errorf("unsupported format %q: expected yaml, toml or json", flag)
	}
	if output != "" {
		if f, err := manifest.FormatFromPath(output); err == nil {
			return f, nil
		}
	}
	return fallback, nil
}
