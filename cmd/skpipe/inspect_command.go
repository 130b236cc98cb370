package main

import (
	"github.com/spf13/cobra"

	"skpipe/internal/product"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var showAttrs bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Dump the structure of a container file (datasets, shapes, attrs)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return product.Inspect(args[0], cmd.OutOrStdout(), showAttrs)
		},
	}

	cmd.Flags().BoolVar(&showAttrs, "show-attrs", false, "Also list attribute blocks")

	return cmd
}
