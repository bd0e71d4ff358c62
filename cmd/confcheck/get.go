package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <config> <key>",
		Short: "Print the raw value of a key in a config document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			checker, cleanup, err := newChecker(s, newLogger(s))
			if err != nil {
				return err
			}
			defer cleanup()

			value, ok, err := checker.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "key %q not found in %s\n", args[1], args[0])
				return &exitStatus{code: exitFindings}
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
