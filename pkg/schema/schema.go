package schema

import (
	"sort"

	"github.com/aretw0/confcheck/pkg/domain"
	"github.com/aretw0/confcheck/pkg/token"
)

// Schema maps keys to their declared ValueType. It is immutable once parsed.
type Schema struct {
	entries map[string]ValueType
}

// Parse tokenizes content and reads each key/value line as "key = type".
// An unknown type name aborts the parse with a *domain.InvalidTypeError.
//
// The reported line is the token position plus one. The tokenizer emits one
// token per source line, so this is also the source line number.
func Parse(content string) (*Schema, error) {
	tokens, err := token.Parse(content)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]ValueType)
	for i, tok := range tokens {
		if tok.Kind != token.KeyValue {
			continue
		}
		vt, err := ParseValueType(tok.Value)
		if err != nil {
			return nil, &domain.InvalidTypeError{Line: i + 1, TypeName: tok.Value}
		}
		entries[tok.Key] = vt
	}

	return &Schema{entries: entries}, nil
}

// New builds a schema from a prepared mapping.
func New(entries map[string]ValueType) *Schema {
	s := &Schema{entries: make(map[string]ValueType, len(entries))}
	for k, v := range entries {
		s.entries[k] = v
	}
	return s
}

// Lookup returns the type declared for key.
func (s *Schema) Lookup(key string) (ValueType, bool) {
	vt, ok := s.entries[key]
	return vt, ok
}

// Len returns the number of declared keys.
func (s *Schema) Len() int {
	return len(s.entries)
}

// Keys returns the declared keys in sorted order.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
