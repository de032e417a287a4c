package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/entityreader"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the entityreader version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "entityreader", entityreader.Version)
			return err
		},
	}
}
