package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/confcheck"
	"github.com/aretw0/confcheck/internal/sanitize"
	"github.com/aretw0/confcheck/pkg/adapters/memory"
	"github.com/aretw0/confcheck/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := memory.NewStore(map[string]string{
		"app.conf":   "name = web\nretry = three\n",
		"app.schema": "name = string\nretry = integer\n",
	})
	return NewServer(confcheck.New(confcheck.WithSource(store)), nil)
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestValidateConfig(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	rep, err := s.handleValidate(ctx, mcp.CallToolRequest{}, ValidateArgs{
		Config: "a = 1\nb = yes",
		Schema: "a = integer\nb = bool",
	})
	require.NoError(t, err)
	assert.False(t, rep.Valid)
	require.Len(t, rep.Findings, 1)
	assert.Equal(t, "b", rep.Findings[0].Key)
	assert.Equal(t, "type_mismatch", rep.Findings[0].Kind)
}

func TestValidateConfig_ParseError(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, ValidateArgs{
		Config: "a = 1",
		Schema: "a = number",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestValidateConfig_StructuredHandler(t *testing.T) {
	s := newTestServer(t)
	handler := mcp.NewStructuredToolHandler(s.handleValidate)

	res, err := handler(context.Background(), toolRequest("validate_config", map[string]any{
		"config": "a = 1",
		"schema": "a = integer",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	res, err = handler(context.Background(), toolRequest("validate_config", map[string]any{
		"config": "no separator",
		"schema": "a = integer",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCheckDocuments(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	rep, err := s.handleCheck(ctx, mcp.CallToolRequest{}, CheckArgs{Config: "app.conf", Schema: "app.schema"})
	require.NoError(t, err)
	assert.Equal(t, "app.conf", rep.Config)
	require.Len(t, rep.Findings, 1)
	assert.Equal(t, "retry", rep.Findings[0].Key)

	_, err = s.handleCheck(ctx, mcp.CallToolRequest{}, CheckArgs{Config: "absent.conf", Schema: "app.schema"})
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	_, err = s.handleCheck(ctx, mcp.CallToolRequest{}, CheckArgs{Config: "app.conf"})
	assert.Error(t, err)
}

func TestGetKey(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleGetKey(ctx, toolRequest("get_key", map[string]any{"document": "app.conf", "key": "name"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "web", resultText(t, res))

	res, err = s.handleGetKey(ctx, toolRequest("get_key", map[string]any{"document": "app.conf", "key": "absent"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleGetKey(ctx, toolRequest("get_key", map[string]any{"document": "app.conf"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDocumentsResource(t *testing.T) {
	s := newTestServer(t)

	contents, err := s.handleDocuments(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, DocumentsURI, text.URI)
	assert.JSONEq(t, `["app.conf","app.schema"]`, text.Text)
}

func TestDocumentsResource_NoSource(t *testing.T) {
	s := NewServer(confcheck.New(), nil)

	_, err := s.handleDocuments(context.Background(), mcp.ReadResourceRequest{})
	assert.ErrorIs(t, err, confcheck.ErrNoSource)
}

func TestValidateConfig_RejectsControlCharacters(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, ValidateArgs{
		Config: "log\x01name = x",
		Schema: "log.name = string",
	})
	assert.ErrorIs(t, err, sanitize.ErrControlCharacter)
}
