package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chazu/geograph/pkg/graph"
)

func newEvalCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate a DSL program or graph document and summarize its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, evalErrs, err := c.app.LoadFile(args[0])
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				return joinEvalErrors(args[0], evalErrs)
			}
			out, err := g.Evaluate()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printSummary(cmd.OutOrStdout(), args[0], g, out)
			return nil
		},
	}
}

func printSummary(w io.Writer, name string, g *graph.Graph, out graph.Outputs) {
	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "  graph:     %d nodes, %d connections, %d properties\n",
		len(g.Nodes()), len(g.Connections()), len(g.Properties()))
	geo := out.Geometry
	fmt.Fprintf(w, "  geometry:  %d vertices, %d edges, %d faces\n",
		geo.VertexCount(), geo.EdgeCount(), geo.FaceCount())
	fmt.Fprintf(w, "  curve:     %d points\n", out.Curve.Points)
	fmt.Fprintf(w, "  instances: %d geometries, %d transforms\n",
		out.Instances.GeometryCount(), out.Instances.TotalTransforms())
	if !geo.IsEmpty() {
		b := geo.BoundingBox()
		fmt.Fprintf(w, "  bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}
}
