package main

import (
	"log/slog"

	"github.com/aretw0/confcheck/internal/logging"
	"github.com/aretw0/confcheck/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts confcheck as an MCP server on Standard Input/Output.
This allows AI agents to validate configs and look up keys as tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			// Ensure logs don't corrupt JSON-RPC on Stdout
			level := slog.LevelInfo
			if s.Debug {
				level = slog.LevelDebug
			}
			logger := logging.New(level)

			checker, cleanup, err := newChecker(s, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.Info("Starting confcheck MCP Server (Stdio)...", "source", s.Source)
			return mcp.NewServer(checker, logger).ServeStdio()
		},
	}
}
