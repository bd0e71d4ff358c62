package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/confcheck"
	"github.com/aretw0/confcheck/internal/logging"
	"github.com/aretw0/confcheck/internal/settings"
	"github.com/aretw0/confcheck/pkg/adapters/file"
	"github.com/aretw0/confcheck/pkg/adapters/redis"
	"github.com/aretw0/confcheck/pkg/ports"
	"github.com/spf13/cobra"
)

// Exit statuses.
const (
	exitOK       = 0
	exitFindings = 1
	exitError    = 2
)

// exitStatus carries a non-zero exit status through cobra without printing.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	settingsPath string
	format       string
	source       string
	dir          string
	redisAddr    string
	debug        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "confcheck",
		Short: "confcheck validates key = value config files against typed schemas",
		Long: `confcheck parses line-based config files (key = value, with # and ; comments)
and checks them against a schema that declares each key as string, bool or integer.
Every discrepancy is reported at once: type mismatches, missing keys and unknown keys.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.settingsPath, "settings", settings.DefaultFile, "Path to the settings file")
	pf.StringVarP(&opts.format, "format", "f", "", "Report format: text, json, yaml or markdown")
	pf.StringVar(&opts.source, "source", "", "Document source: file or redis")
	pf.StringVar(&opts.dir, "dir", "", "Base directory for the file source")
	pf.StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the redis source")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newValidateCmd(opts),
		newGetCmd(opts),
		newServeCmd(opts),
		newMCPCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	return run(newRootCmd(), os.Args[1:])
}

func run(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return exitOK
	}

	var status *exitStatus
	if errors.As(err, &status) {
		return status.code
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	return exitError
}

// resolve loads the settings file and applies explicitly set flags on top.
func (o *rootOptions) resolve(cmd *cobra.Command) (settings.Settings, error) {
	s, err := settings.Load(o.settingsPath)
	if err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		s.Format = o.format
	}
	if flags.Changed("source") {
		s.Source = o.source
	}
	if flags.Changed("dir") {
		s.Dir = o.dir
	}
	if flags.Changed("redis-addr") {
		s.Redis.Addr = o.redisAddr
	}
	if flags.Changed("debug") {
		s.Debug = o.debug
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func newLogger(s settings.Settings) *slog.Logger {
	if s.Debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}

// newSource builds the configured document source and its cleanup function.
func newSource(s settings.Settings) (ports.Source, func(), error) {
	switch s.Source {
	case settings.SourceFile:
		return file.New(s.Dir), func() {}, nil
	case settings.SourceRedis:
		store := redis.New(s.Redis.Addr, s.Redis.Password, s.Redis.DB, redis.WithPrefix(s.Redis.Prefix))
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source: %q", s.Source)
	}
}

// newChecker wires a Checker from the resolved settings.
func newChecker(s settings.Settings, logger *slog.Logger, opts ...confcheck.Option) (*confcheck.Checker, func(), error) {
	src, cleanup, err := newSource(s)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]confcheck.Option{
		confcheck.WithSource(src),
		confcheck.WithLogger(logger),
	}, opts...)
	return confcheck.New(opts...), cleanup, nil
}
