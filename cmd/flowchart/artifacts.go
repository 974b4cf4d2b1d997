package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/flowchart/pkg/flowchart/artifact"
)

func newSaveCmd(a *app) *cobra.Command {
	var f compileFlags

	cmd := &cobra.Command{
		Use:   "save <project> [file]",
		Short: "Compile a reply and store it as the project's flow",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 1)
			if err != nil {
				return err
			}
			g, err := a.graphFromInput(cmd, &f, input)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			projectID := args[0]
			if _, err := artifact.SaveGraph(store, projectID, g, a.artifactOptions()...); err != nil {
				return err
			}
			info, err := store.Stat(projectID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s revision %d (%d bytes)\n", info.ProjectID, info.Revision, info.Size)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var mermaid bool

	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Print a project's stored flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			g, report, err := artifact.LoadGraph(store, args[0], a.artifactOptions()...)
			if err != nil {
				return err
			}
			for _, msg := range report.Errors {
				a.logger.Warn("stored flow violates structure", "project_id", args[0], "error", msg)
			}

			if mermaid {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), g.Mermaid())
				return err
			}
			return writeJSON(cmd.OutOrStdout(), g)
		},
	}
	cmd.Flags().BoolVar(&mermaid, "mermaid", false, "print as a Mermaid flowchart")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored flows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.List()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), infos)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROJECT\tREVISION\tSIZE\tUPDATED")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", info.ProjectID, info.Revision, info.Size, info.UpdatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
