package schema

import (
	"fmt"
	"strconv"
)

// ValueType is the declared kind of a schema entry.
// The set is closed: String, Bool and Integer.
type ValueType int

const (
	String ValueType = iota
	Bool
	Integer
)

// String returns the name used for the type in schema files.
func (t ValueType) String() string {
	switch t {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Valid reports whether raw is an acceptable value for the type.
//
//   - String accepts anything.
//   - Bool accepts exactly "true" or "false".
//   - Integer accepts a base-10 signed 64-bit number with an optional leading '-'.
func (t ValueType) Valid(raw string) bool {
	switch t {
	case String:
		return true
	case Bool:
		return raw == "true" || raw == "false"
	case Integer:
		if raw == "" || raw[0] == '+' {
			return false
		}
		_, err := strconv.ParseInt(raw, 10, 64)
		return err == nil
	default:
		return false
	}
}

// MarshalText encodes the type by name.
func (t ValueType) MarshalText() ([]byte, error) {
	switch t {
	case String, Bool, Integer:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("unsupported type: %d", int(t))
	}
}

// UnmarshalText decodes a type name.
func (t *ValueType) UnmarshalText(text []byte) error {
	parsed, err := ParseValueType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseValueType converts a type name from a schema file to a ValueType.
func ParseValueType(name string) (ValueType, error) {
	switch name {
	case "string":
		return String, nil
	case "bool":
		return Bool, nil
	case "integer":
		return Integer, nil
	default:
		return 0, fmt.Errorf("unsupported type: %s", name)
	}
}
