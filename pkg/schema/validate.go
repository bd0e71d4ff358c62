package schema

import (
	"sort"

	"github.com/aretw0/confcheck/pkg/config"
)

// Validate compares cfg against s and returns every discrepancy at once.
//
// A schema key missing from cfg is a KindMissingKey finding, a present key
// whose value fails the declared type is KindTypeMismatch, and a cfg key the
// schema does not declare is KindUnknownKey. Findings are sorted by key.
// The result is nil when there are none, otherwise an *AggregateError.
func Validate(cfg *config.Config, s *Schema) error {
	var errs []*ValidationError

	for key, vt := range s.entries {
		value, ok := cfg.Get(key)
		if !ok {
			errs = append(errs, &ValidationError{Kind: KindMissingKey, Key: key})
			continue
		}
		if !vt.Valid(value) {
			errs = append(errs, &ValidationError{
				Kind:     KindTypeMismatch,
				Key:      key,
				Expected: vt.String(),
				Got:      value,
			})
		}
	}

	for _, key := range cfg.Keys() {
		if _, declared := s.entries[key]; !declared {
			errs = append(errs, &ValidationError{Kind: KindUnknownKey, Key: key})
		}
	}

	if len(errs) == 0 {
		return nil
	}

	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Key < errs[j].Key
	})
	return &AggregateError{Errors: errs}
}
