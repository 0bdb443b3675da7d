package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/picogrid/vegca-inputs/pkg/config"
	"github.com/picogrid/vegca-inputs/pkg/logger"
	"github.com/picogrid/vegca-inputs/pkg/params"
	"github.com/picogrid/vegca-inputs/pkg/schema"
	"github.com/picogrid/vegca-inputs/pkg/utils"
)

// isInteractive reports whether edit may prompt
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		output string
		yes    bool
	)

	editCmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit parameter values interactively",
		Long: `Prompt for every parameter and write the result back. VEGCA_PARAM_* and --set
overrides are offered as the defaults and are written along with the answers.
Without a terminal the overrides are written without prompting.
Comments in the original file are replaced by a generated header.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.inputPath(args)
			baseline, err := params.ReadFile(path)
			if err != nil {
				return err
			}

			overrides, err := opts.overrides(baseline)
			if err != nil {
				return err
			}
			seeded, err := baseline.WithOverrides(overrides)
			if err != nil {
				return fmt.Errorf("failed to apply overrides: %w", err)
			}

			s, err := opts.loadSchema()
			if err != nil {
				logger.Warnf("Editing without schema checks: %v", err)
			}

			interactive := isInteractive()
			var prompted map[string]string
			if interactive {
				prompted, err = utils.PromptForValues(seeded, s)
				if err != nil {
					return fmt.Errorf("failed to get parameters: %w", err)
				}
			} else if len(overrides) == 0 {
				return fmt.Errorf("edit needs an interactive terminal; pass --set name=value to change values without prompting")
			}

			changed := mergeChanges(baseline, overrides, prompted)
			if len(changed) == 0 {
				logger.Info("No changes")
				return nil
			}

			names := make([]string, 0, len(changed))
			for name, value := range changed {
				names = append(names, fmt.Sprintf("%s = %s", name, value))
			}
			sort.Strings(names)
			logger.LogList("Changed parameters:", names)

			dest := path
			if output != "" {
				dest = output
			}

			if interactive && !yes {
				confirm := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Write %d change(s) to %s?", len(changed), dest),
					Default: true,
				}
				if err := survey.AskOne(prompt, &confirm); err != nil {
					return err
				}
				if !confirm {
					logger.Info("Discarded changes")
					return nil
				}
			}

			return writeEdited(baseline, changed, s, dest)
		},
	}

	editCmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of overwriting the input")
	editCmd.Flags().BoolVarP(&yes, "yes", "y", false, "write without asking for confirmation")
	return editCmd
}

// mergeChanges layers prompted answers over overrides and keeps only values that
// differ from the file.
func mergeChanges(baseline *params.Table, overrides, prompted map[string]string) map[string]string {
	changed := config.MergeOverrides(overrides, prompted)
	for name, value := range changed {
		if v, ok := baseline.Get(name); ok && v.Raw() == strings.TrimSpace(value) {
			delete(changed, name)
		}
	}
	return changed
}

func writeEdited(baseline *params.Table, changed map[string]string, s *schema.Schema, dest string) error {
	edited, err := baseline.WithOverrides(changed)
	if err != nil {
		return err
	}
	if s != nil {
		if err := s.Validate(edited, false); err != nil {
			return err
		}
	}

	header := []string{"Vegetation CA parameters", "Edited " + time.Now().Format("2006-01-02 15:04")}
	if s != nil {
		header = append(header, "Schema "+s.Name)
	}

	if err := params.WriteFile(dest, edited, params.WriteOptions{Header: header, BlankBetween: true}); err != nil {
		return err
	}
	logger.Successf("Wrote %d parameters to %s", edited.Len(), dest)
	return nil
}
