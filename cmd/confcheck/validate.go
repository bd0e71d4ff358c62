package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/confcheck/internal/presentation/tui"
	"github.com/aretw0/confcheck/pkg/domain"
	"github.com/aretw0/confcheck/pkg/report"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config> <schema>",
		Short: "Validate a config document against a schema document",
		Long: `Reads both documents from the configured source, validates the config against
the schema and prints a report. Exits with status 1 when the config has findings
or either document fails to parse.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			format, err := report.ParseFormat(s.Format)
			if err != nil {
				return err
			}

			checker, cleanup, err := newChecker(s, newLogger(s))
			if err != nil {
				return err
			}
			defer cleanup()

			rep, err := checker.Check(cmd.Context(), args[0], args[1])
			if err != nil {
				if errors.Is(err, domain.ErrInvalidLine) || errors.Is(err, domain.ErrInvalidType) {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return &exitStatus{code: exitFindings}
				}
				return err
			}

			out := cmd.OutOrStdout()
			renderOpts := report.Options{Color: tui.IsTerminal(out)}
			if renderOpts.Color {
				renderOpts.MarkdownRenderer = tui.NewRenderer()
			}
			if err := report.Render(out, rep, format, renderOpts); err != nil {
				return err
			}

			if !rep.Valid {
				return &exitStatus{code: exitFindings}
			}
			return nil
		},
	}
}
