package token

import (
	"strings"

	"github.com/aretw0/confcheck/pkg/domain"
)

// Kind classifies a source line.
type Kind int

const (
	Blank Kind = iota
	Comment
	KeyValue
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case KeyValue:
		return "key_value"
	default:
		return "unknown"
	}
}

// Token is one classified source line.
type Token struct {
	Kind Kind
	// Line is the 1-based position of the line in the input.
	Line int

	// Text holds the trimmed line for comments, including the marker.
	Text string

	// Key and Value are set for KeyValue tokens, both trimmed.
	Key   string
	Value string

	// IgnoreError marks a "soft" entry written with a leading '-'.
	IgnoreError bool
}

// Parse splits content into lines and classifies each one.
// It stops at the first malformed line and returns a *domain.InvalidLineError.
func Parse(content string) ([]Token, error) {
	lines := splitLines(content)
	tokens := make([]Token, 0, len(lines))

	for i, line := range lines {
		tok, err := parseLine(i+1, line)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

func parseLine(number int, line string) (Token, error) {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return Token{Kind: Blank, Line: number}, nil
	case strings.HasPrefix(trimmed, "#"), strings.HasPrefix(trimmed, ";"):
		return Token{Kind: Comment, Line: number, Text: trimmed}, nil
	}

	ignore := false
	if rest, ok := strings.CutPrefix(trimmed, "-"); ok {
		trimmed = rest
		ignore = true
	}

	key, value, ok := strings.Cut(trimmed, "=")
	if !ok {
		return Token{}, &domain.InvalidLineError{Line: number, Content: line}
	}

	return Token{
		Kind:        KeyValue,
		Line:        number,
		Key:         strings.TrimSpace(key),
		Value:       strings.TrimSpace(value),
		IgnoreError: ignore,
	}, nil
}

// splitLines breaks content on '\n', dropping a "\r" before each terminator.
// A final terminator does not start an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
