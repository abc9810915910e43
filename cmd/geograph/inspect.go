package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chazu/geograph/pkg/graph"
)

func newInspectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "List a graph's nodes, connections, properties and validation findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, evalErrs, err := c.app.LoadFile(args[0])
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				return joinEvalErrors(args[0], evalErrs)
			}
			printGraph(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

func printGraph(w io.Writer, g *graph.Graph) {
	fmt.Fprintf(w, "graph %s\n", g.ID)
	fmt.Fprintln(w, "nodes:")
	for _, n := range g.Nodes() {
		b := n.NodeBase()
		fmt.Fprintf(w, "  %s %s\n", b.ID().Short(), b.TypeName())
	}
	fmt.Fprintln(w, "connections:")
	for _, conn := range g.Connections() {
		out, in := g.Port(conn.Output), g.Port(conn.Input)
		fmt.Fprintf(w, "  %s.%s -> %s.%s\n",
			conn.OutputNode.Short(), out.Name, conn.InputNode.Short(), in.Name)
	}
	fmt.Fprintln(w, "properties:")
	for _, p := range g.Properties() {
		fmt.Fprintf(w, "  %s (%s) = %v\n", p.ReferenceName, p.Type, p.Value)
	}
	findings := graph.Validate(g)
	if len(findings) == 0 {
		return
	}
	fmt.Fprintln(w, "findings:")
	for _, v := range findings {
		fmt.Fprintf(w, "  %s\n", v.Error())
	}
}
