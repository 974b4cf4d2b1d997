package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/flowchart/pkg/flowchart"
	"github.com/randalmurphal/flowchart/pkg/flowchart/chat"
)

// errNoFlow is returned in strict or transcript mode when no flow was found.
var errNoFlow = errors.New("no flow found in input")

// compileFlags are shared by commands that turn a reply into a graph.
type compileFlags struct {
	strict     bool
	transcript bool
}

func (f *compileFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail instead of returning the default graph")
	cmd.Flags().BoolVar(&f.transcript, "transcript", false, "input is a JSON chat transcript; use the latest assistant flow")
}

// graphFromInput compiles input as a single reply, or as a transcript.
func (a *app) graphFromInput(cmd *cobra.Command, f *compileFlags, input []byte) (*flowchart.Graph, error) {
	if f.transcript {
		var msgs []chat.Message
		if err := json.Unmarshal(input, &msgs); err != nil {
			return nil, fmt.Errorf("parse transcript: %w", err)
		}
		if g, ok := chat.LatestGraph(msgs); ok {
			return g, nil
		}
		if f.strict {
			return nil, errNoFlow
		}
		a.logger.Warn("transcript has no flow, using default graph", "messages", len(msgs))
		return flowchart.FallbackGraph(), nil
	}

	c := a.compiler()
	if f.strict {
		g, err := c.TryCompile(cmd.Context(), string(input))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errNoFlow, err)
		}
		return g, nil
	}
	return c.Compile(cmd.Context(), string(input)), nil
}

func newCompileCmd(a *app) *cobra.Command {
	var f compileFlags

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile an assistant reply into graph JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 0)
			if err != nil {
				return err
			}
			g, err := a.graphFromInput(cmd, &f, input)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), g)
		},
	}
	f.register(cmd)
	return cmd
}

func newMermaidCmd(a *app) *cobra.Command {
	var f compileFlags

	cmd := &cobra.Command{
		Use:   "mermaid [file]",
		Short: "Compile an assistant reply and print it as a Mermaid flowchart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 0)
			if err != nil {
				return err
			}
			g, err := a.graphFromInput(cmd, &f, input)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), g.Mermaid())
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
