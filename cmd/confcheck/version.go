package main

import (
	"github.com/aretw0/confcheck"
	"github.com/aretw0/confcheck/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of confcheck",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tui.PrintBanner(cmd.OutOrStdout(), confcheck.Version)
		},
	}
}
