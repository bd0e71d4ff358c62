package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/confcheck"
	"github.com/aretw0/confcheck/internal/logging"
	"github.com/aretw0/confcheck/internal/sanitize"
	"github.com/aretw0/confcheck/pkg/ports"
	"github.com/aretw0/confcheck/pkg/report"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocumentsURI is the resource listing every document the source knows.
const DocumentsURI = "confcheck://documents"

// Checker defines the operations the MCP server exposes as tools.
type Checker interface {
	CheckText(ctx context.Context, configText, schemaText string) (*report.Report, error)
	Check(ctx context.Context, configName, schemaName string) (*report.Report, error)
	Get(ctx context.Context, configName, key string) (string, bool, error)
	Source() ports.Source
}

var _ Checker = (*confcheck.Checker)(nil)

// ValidateArgs are the arguments of the validate_config tool.
type ValidateArgs struct {
	Config string `json:"config"`
	Schema string `json:"schema"`
}

// CheckArgs are the arguments of the check_documents tool.
type CheckArgs struct {
	Config string `json:"config"`
	Schema string `json:"schema"`
}

// Server wraps a Checker and exposes it as an MCP Server.
type Server struct {
	checker   Checker
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// A nil logger discards output; stdout belongs to the protocol.
func NewServer(checker Checker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		checker:   checker,
		logger:    logger,
		mcpServer: server.NewMCPServer("confcheck-mcp", confcheck.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	validateTool := mcp.NewTool("validate_config",
		mcp.WithDescription("Validate config text against schema text and report every finding."),
		mcp.WithString("config", mcp.Required(), mcp.Description("Config document text (key = value lines)")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema document text (key = string|bool|integer lines)")),
		mcp.WithOutputSchema[report.Report](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	checkTool := mcp.NewTool("check_documents",
		mcp.WithDescription("Validate a stored config document against a stored schema document."),
		mcp.WithString("config", mcp.Required(), mcp.Description("Config document name")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Schema document name")),
		mcp.WithOutputSchema[report.Report](),
	)
	s.mcpServer.AddTool(checkTool, mcp.NewStructuredToolHandler(s.handleCheck))

	getTool := mcp.NewTool("get_key",
		mcp.WithDescription("Look up the raw value of a key in a stored config document."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Config document name")),
		mcp.WithString("key", mcp.Required(), mcp.Description("Key to look up")),
	)
	s.mcpServer.AddTool(getTool, s.handleGetKey)
}

func (s *Server) handleValidate(ctx context.Context, _ mcp.CallToolRequest, args ValidateArgs) (report.Report, error) {
	docs, err := sanitize.Documents(args.Config, args.Schema)
	if err != nil {
		s.logger.Warn("MCP validate_config: input rejected", "error", err)
		return report.Report{}, fmt.Errorf("input rejected: %w", err)
	}

	rep, err := s.checker.CheckText(ctx, docs[0], docs[1])
	if err != nil {
		s.logger.Warn("MCP validate_config: parse failed", "error", err)
		return report.Report{}, err
	}
	return *rep, nil
}

func (s *Server) handleCheck(ctx context.Context, _ mcp.CallToolRequest, args CheckArgs) (report.Report, error) {
	if args.Config == "" || args.Schema == "" {
		return report.Report{}, errors.New("config and schema names are required")
	}
	rep, err := s.checker.Check(ctx, args.Config, args.Schema)
	if err != nil {
		s.logger.Warn("MCP check_documents: failed", "config", args.Config, "schema", args.Schema, "error", err)
		return report.Report{}, err
	}
	return *rep, nil
}

func (s *Server) handleGetKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	document, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	value, ok, err := s.checker.Get(ctx, document, key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("key %q not found in %s", key, document)), nil
	}
	return mcp.NewToolResultText(value), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DocumentsURI, "Stored Documents",
		mcp.WithResourceDescription("Names of the config and schema documents available to check_documents"),
		mcp.WithMIMEType("application/json"),
	), s.handleDocuments)
}

func (s *Server) handleDocuments(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	src := s.checker.Source()
	if src == nil {
		return nil, confcheck.ErrNoSource
	}

	names, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	jsonBytes, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("failed to encode documents: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DocumentsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
