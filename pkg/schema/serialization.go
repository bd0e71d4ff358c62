package schema

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON serializes the schema as a map of keys to type names.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.entries)
}

// UnmarshalJSON reads a map of keys to type names.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}

	var raw map[string]ValueType
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		raw = make(map[string]ValueType)
	}
	s.entries = raw
	return nil
}
