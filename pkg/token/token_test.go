package token

import (
	"errors"
	"testing"

	"github.com/aretw0/confcheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Classification(t *testing.T) {
	content := "# header\n\n; alt comment\nendpoint = localhost:3000\n- debug = true\n   \n"

	tokens, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	assert.Equal(t, Token{Kind: Comment, Line: 1, Text: "# header"}, tokens[0])
	assert.Equal(t, Token{Kind: Blank, Line: 2}, tokens[1])
	assert.Equal(t, Token{Kind: Comment, Line: 3, Text: "; alt comment"}, tokens[2])
	assert.Equal(t, Token{Kind: KeyValue, Line: 4, Key: "endpoint", Value: "localhost:3000"}, tokens[3])
	assert.Equal(t, Token{Kind: KeyValue, Line: 5, Key: "debug", Value: "true", IgnoreError: true}, tokens[4])
	assert.Equal(t, Token{Kind: Blank, Line: 6}, tokens[5])
}

func TestParse_SplitsOnFirstEquals(t *testing.T) {
	tokens, err := Parse("dsn = user=admin;pass=a=b")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "dsn", tokens[0].Key)
	assert.Equal(t, "user=admin;pass=a=b", tokens[0].Value)
}

func TestParse_EmptyKeyAndValue(t *testing.T) {
	tokens, err := Parse("=\nkey =")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "", tokens[0].Key)
	assert.Equal(t, "", tokens[0].Value)
	assert.Equal(t, "key", tokens[1].Key)
	assert.Equal(t, "", tokens[1].Value)
}

func TestParse_CommentLooksLikeKeyValue(t *testing.T) {
	tokens, err := Parse("  # debug = true")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, Comment, tokens[0].Kind)
	assert.Equal(t, "# debug = true", tokens[0].Text)
}

func TestParse_InvalidLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
		raw     string
	}{
		{"missing separator", "a = 1\n  no separator here  \nb = 2", 2, "  no separator here  "},
		{"soft line without separator", "- lonely", 1, "- lonely"},
		{"after blank and comment", "\n# c\noops", 3, "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Parse(tt.content)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.True(t, errors.Is(err, domain.ErrInvalidLine))

			var lineErr *domain.InvalidLineError
			require.ErrorAs(t, err, &lineErr)
			assert.Equal(t, tt.line, lineErr.Line)
			assert.Equal(t, tt.raw, lineErr.Content)
		})
	}
}

func TestParse_StopsAtFirstError(t *testing.T) {
	_, err := Parse("bad one\nbad two")
	var lineErr *domain.InvalidLineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 1, lineErr.Line)
	assert.EqualError(t, err, "line 1: invalid syntax: bad one")
}

func TestParse_LineEndings(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		tokens, err := Parse("")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("trailing newline adds no token", func(t *testing.T) {
		tokens, err := Parse("a = 1\n")
		require.NoError(t, err)
		assert.Len(t, tokens, 1)
	})

	t.Run("crlf", func(t *testing.T) {
		tokens, err := Parse("a = 1\r\nb = 2\r\n")
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, "1", tokens[0].Value)
		assert.Equal(t, 2, tokens[1].Line)
	})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "blank", Blank.String())
	assert.Equal(t, "comment", Comment.String())
	assert.Equal(t, "key_value", KeyValue.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
