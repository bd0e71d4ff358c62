// Package sanitize screens document text received from untrusted callers
// (HTTP and MCP) before it reaches the parser.
package sanitize

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxDocumentSize is 256KB.
	DefaultMaxDocumentSize = 256 << 10
	// EnvMaxDocumentSize overrides the default limit.
	EnvMaxDocumentSize = "CONFCHECK_MAX_DOCUMENT_SIZE"
)

var (
	ErrDocumentTooLarge = errors.New("document exceeds maximum allowed size")
	ErrInvalidUTF8      = errors.New("document contains invalid UTF-8 sequences")
	ErrControlCharacter = errors.New("document contains control characters")
)

// Document enforces the size limit, validates UTF-8 and rejects control
// characters other than newline, tab and carriage return.
// Accepted text is returned unchanged, so keys and values match what the
// library parses from the same text.
func Document(text string) (string, error) {
	limit := MaxDocumentSize()
	if len(text) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrDocumentTooLarge, len(text), limit)
	}

	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	line := 1
	for _, r := range text {
		if r == '\n' {
			line++
			continue
		}
		if unicode.IsControl(r) && !isSafeControl(r) {
			return "", fmt.Errorf("%w: %U at line %d", ErrControlCharacter, r, line)
		}
	}
	return text, nil
}

// Documents checks each text in order and stops at the first error.
func Documents(texts ...string) ([]string, error) {
	out := make([]string, len(texts))
	for i, text := range texts {
		clean, err := Document(text)
		if err != nil {
			return nil, err
		}
		out[i] = clean
	}
	return out, nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// MaxDocumentSize returns the active limit in bytes.
func MaxDocumentSize() int {
	if val := os.Getenv(EnvMaxDocumentSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxDocumentSize
}
