package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/croemmich/wpheader/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wpheader version",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			return err
		},
	}
}
