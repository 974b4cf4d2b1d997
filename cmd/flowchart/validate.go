package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/flowchart/pkg/flowchart"
)

var errInvalidGraph = errors.New("graph is invalid")

func newValidateCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a saved graph's structure",
		Long: `Validate reads a {nodes, edges} graph and lists every structural
violation. It exits non-zero when the graph is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 0)
			if err != nil {
				return err
			}

			report := flowchart.ValidateJSON(input, a.validateOptions()...)
			out := cmd.OutOrStdout()

			if asJSON {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else if report.Valid {
				fmt.Fprintln(out, "valid")
			} else {
				for _, msg := range report.Errors {
					fmt.Fprintln(out, msg)
				}
			}

			if !report.Valid {
				return fmt.Errorf("%w: %d violation(s)", errInvalidGraph, len(report.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
