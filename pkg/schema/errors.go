package schema

import (
	"errors"
	"fmt"
)

// Kind classifies a validation finding.
type Kind string

const (
	KindTypeMismatch Kind = "type_mismatch"
	KindMissingKey   Kind = "missing_key"
	KindUnknownKey   Kind = "unknown_key"
)

// ValidationError is a single discrepancy between a config and a schema.
// Expected and Got are only set for KindTypeMismatch.
type ValidationError struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Key      string `json:"key" yaml:"key"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Got      string `json:"got,omitempty" yaml:"got,omitempty"`
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindTypeMismatch:
		return fmt.Sprintf("'%s': expected %s, got '%s'", e.Key, e.Expected, e.Got)
	case KindMissingKey:
		return fmt.Sprintf("'%s': missing (required by schema)", e.Key)
	case KindUnknownKey:
		return fmt.Sprintf("'%s': unknown key (not in schema)", e.Key)
	default:
		return fmt.Sprintf("'%s': %s", e.Key, e.Kind)
	}
}

// AggregateError carries every finding of one validation run.
type AggregateError struct {
	Errors []*ValidationError
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns the findings if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []*ValidationError {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
