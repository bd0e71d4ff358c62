// Package config builds a flat key/value map from configuration text.
//
// Only key/value lines are kept; blank lines and comments are discarded, and
// a later occurrence of a key overwrites an earlier one. Keys are opaque
// strings: "log.name" is a single key, not a path.
package config

import (
	"fmt"
	"sort"

	"github.com/aretw0/confcheck/pkg/token"
	"github.com/mitchellh/mapstructure"
)

// Config is an immutable key to raw value mapping.
type Config struct {
	entries map[string]string
}

// Parse tokenizes content and collects its key/value entries.
func Parse(content string) (*Config, error) {
	tokens, err := token.Parse(content)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]string)
	for _, tok := range tokens {
		if tok.Kind != token.KeyValue {
			continue
		}
		entries[tok.Key] = tok.Value
	}

	return &Config{entries: entries}, nil
}

// Get returns the raw value stored under key.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of distinct keys.
func (c *Config) Len() int {
	return len(c.entries)
}

// Keys returns all keys in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the underlying map.
func (c *Config) Entries() map[string]string {
	out := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// Decode binds the entries onto target, which must be a pointer to a struct
// or map. Struct fields are matched through `mapstructure` tags and raw
// strings are converted to the field types ("3" -> int, "true" -> bool).
//
//	var opts struct {
//	    Endpoint string `mapstructure:"endpoint"`
//	    Retry    int    `mapstructure:"retry"`
//	}
//	err := cfg.Decode(&opts)
func (c *Config) Decode(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(c.Entries()); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
