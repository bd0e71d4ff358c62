package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidLine is matched by errors returned for a non-blank, non-comment line without a '=' separator.
var ErrInvalidLine = errors.New("invalid line")

// ErrInvalidType is matched by errors returned for a schema line naming an unsupported type.
var ErrInvalidType = errors.New("invalid type")

// ErrDocumentNotFound is returned when a source has no document under the requested name.
var ErrDocumentNotFound = errors.New("document not found")

// ErrInvalidDocumentName is returned for names a source refuses to resolve,
// such as empty names or paths leading outside a file source's base directory.
var ErrInvalidDocumentName = errors.New("invalid document name")

// InvalidLineError reports a line the tokenizer could not classify.
// Content is the original, untrimmed line.
type InvalidLineError struct {
	Line    int
	Content string
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("line %d: invalid syntax: %s", e.Line, e.Content)
}

// Is reports whether target is ErrInvalidLine.
func (e *InvalidLineError) Is(target error) bool {
	return target == ErrInvalidLine
}

// InvalidTypeError reports a schema entry whose type name is not recognized.
type InvalidTypeError struct {
	Line     int
	TypeName string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("line %d: unknown type: %s", e.Line, e.TypeName)
}

// Is reports whether target is ErrInvalidType.
func (e *InvalidTypeError) Is(target error) bool {
	return target == ErrInvalidType
}

// ParseErrorLine extracts the line number carried by a parse error.
// It returns false when err is not a parse error.
func ParseErrorLine(err error) (int, bool) {
	var lineErr *InvalidLineError
	if errors.As(err, &lineErr) {
		return lineErr.Line, true
	}
	var typeErr *InvalidTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Line, true
	}
	return 0, false
}

// ParseErrorKind returns a short machine-readable kind for a parse error
// ("invalid_line" or "invalid_type"), or "" when err is not a parse error.
func ParseErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLine):
		return "invalid_line"
	case errors.Is(err, ErrInvalidType):
		return "invalid_type"
	default:
		return ""
	}
}
