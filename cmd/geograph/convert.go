package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/geograph/pkg/graph"
)

func newConvertCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode a graph as a JSON or msgpack document",
		Long: "Convert loads a DSL program or graph document and writes it as a graph\n" +
			"document. The output format follows the extension: .json, .msgpack or .mpk.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.Convert(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", args[1], n)
			return nil
		},
	}
}

// Convert loads in and writes it to out in the format named by out's
// extension. It returns the number of bytes written.
func (a *App) Convert(in, out string) (int, error) {
	f, err := graph.FormatFromPath(out)
	if err != nil {
		return 0, err
	}
	g, evalErrs, err := a.LoadFile(in)
	if err != nil {
		return 0, err
	}
	if len(evalErrs) > 0 {
		return 0, joinEvalErrors(in, evalErrs)
	}
	doc, err := g.Serialize()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", in, err)
	}
	data, err := doc.Encode(f)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return 0, err
	}
	return len(data), nil
}
