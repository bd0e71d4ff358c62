package confcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/confcheck/internal/logging"
	"github.com/aretw0/confcheck/pkg/config"
	"github.com/aretw0/confcheck/pkg/domain"
	"github.com/aretw0/confcheck/pkg/ports"
	"github.com/aretw0/confcheck/pkg/report"
	"github.com/aretw0/confcheck/pkg/schema"
)

// Version is the current release of confcheck.
const Version = "0.3.0"

// ErrNoSource is returned by name-based operations when the Checker has no Source.
var ErrNoSource = errors.New("no document source configured")

// Checker is the high-level entry point for the confcheck library.
// It reads documents from a Source, parses them and validates configs against schemas.
// A Checker holds no mutable state and is safe for concurrent use.
type Checker struct {
	source ports.Source
	hooks  domain.Hooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Checker.
type Option func(*Checker)

// WithSource sets the document source used by Check and Get.
func WithSource(s ports.Source) Option {
	return func(c *Checker) {
		c.source = s
	}
}

// WithHooks registers observability hooks. Repeated calls chain the hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *Checker) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c
}

// Source returns the configured document source, or nil.
func (c *Checker) Source() ports.Source {
	return c.source
}

// ParseConfig parses config text. name only labels logs and events.
func (c *Checker) ParseConfig(ctx context.Context, name, text string) (*config.Config, error) {
	cfg, err := config.Parse(text)
	keys := 0
	if cfg != nil {
		keys = cfg.Len()
	}
	c.emitParsed(ctx, domain.DocumentConfig, name, keys, err)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", label(name), err)
	}
	return cfg, nil
}

// ParseSchema parses schema text. name only labels logs and events.
func (c *Checker) ParseSchema(ctx context.Context, name, text string) (*schema.Schema, error) {
	s, err := schema.Parse(text)
	keys := 0
	if s != nil {
		keys = s.Len()
	}
	c.emitParsed(ctx, domain.DocumentSchema, name, keys, err)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", label(name), err)
	}
	return s, nil
}

// Validate checks an already parsed config against a schema and reports every finding.
func (c *Checker) Validate(ctx context.Context, cfg *config.Config, s *schema.Schema) *report.Report {
	return c.validate(ctx, "", "", cfg, s)
}

// CheckText parses both documents and validates the config against the schema.
// Parse failures are returned as errors; validation findings are in the report.
func (c *Checker) CheckText(ctx context.Context, configText, schemaText string) (*report.Report, error) {
	return c.checkText(ctx, "", "", configText, schemaText)
}

// Check reads both documents from the source and validates them.
func (c *Checker) Check(ctx context.Context, configName, schemaName string) (*report.Report, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}

	configText, err := c.source.Read(ctx, configName)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	schemaText, err := c.source.Read(ctx, schemaName)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	return c.checkText(ctx, configName, schemaName, configText, schemaText)
}

// Get reads and parses the named config and returns the raw value of key.
func (c *Checker) Get(ctx context.Context, configName, key string) (string, bool, error) {
	if c.source == nil {
		return "", false, ErrNoSource
	}

	text, err := c.source.Read(ctx, configName)
	if err != nil {
		return "", false, fmt.Errorf("read config: %w", err)
	}
	cfg, err := c.ParseConfig(ctx, configName, text)
	if err != nil {
		return "", false, err
	}

	value, ok := cfg.Get(key)
	return value, ok, nil
}

// LoadSchema reads and parses the named schema document.
func (c *Checker) LoadSchema(ctx context.Context, name string) (*schema.Schema, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}

	text, err := c.source.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return c.ParseSchema(ctx, name, text)
}

func (c *Checker) checkText(ctx context.Context, configName, schemaName, configText, schemaText string) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := c.ParseConfig(ctx, configName, configText)
	if err != nil {
		return nil, err
	}
	s, err := c.ParseSchema(ctx, schemaName, schemaText)
	if err != nil {
		return nil, err
	}

	return c.validate(ctx, configName, schemaName, cfg, s), nil
}

func (c *Checker) validate(ctx context.Context, configName, schemaName string, cfg *config.Config, s *schema.Schema) *report.Report {
	start := time.Now()
	r := report.New(configName, schemaName, schema.Validate(cfg, s))
	elapsed := time.Since(start)

	c.logger.Debug("Config validated",
		"config", configName,
		"schema", schemaName,
		"valid", r.Valid,
		"findings", len(r.Findings),
		"duration", elapsed,
	)

	if c.hooks.OnValidated != nil {
		c.hooks.OnValidated(ctx, &domain.ValidateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventValidated},
			Config:    configName,
			Schema:    schemaName,
			Findings:  r.Counts(),
			Duration:  elapsed,
		})
	}
	return r
}

func (c *Checker) emitParsed(ctx context.Context, document, name string, keys int, err error) {
	if err != nil {
		c.logger.Debug("Document rejected", "document", document, "name", name, "err", err)
	} else {
		c.logger.Debug("Document parsed", "document", document, "name", name, "keys", keys)
	}

	if c.hooks.OnParsed != nil {
		c.hooks.OnParsed(ctx, &domain.ParseEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventParsed},
			Document:  document,
			Name:      name,
			Keys:      keys,
			Err:       err,
		})
	}
}

func label(name string) string {
	if name == "" {
		return "<inline>"
	}
	return name
}
