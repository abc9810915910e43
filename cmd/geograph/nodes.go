package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNodesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List the registered node types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range c.app.Registry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
