// Package report turns validation results into a serializable summary and
// renders it as text, JSON, YAML or Markdown.
package report

import (
	"github.com/aretw0/confcheck/pkg/schema"
)

// Finding is one discrepancy between a config and a schema.
type Finding struct {
	Kind     string `json:"kind" yaml:"kind"`
	Key      string `json:"key" yaml:"key"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Got      string `json:"got,omitempty" yaml:"got,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

// Report summarizes one check of a config against a schema.
type Report struct {
	Config   string    `json:"config,omitempty" yaml:"config,omitempty"`
	Schema   string    `json:"schema,omitempty" yaml:"schema,omitempty"`
	Valid    bool      `json:"valid" yaml:"valid"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// New builds a report from the result of schema.Validate.
// A nil err yields a valid report with no findings.
func New(configName, schemaName string, err error) *Report {
	r := &Report{
		Config:   configName,
		Schema:   schemaName,
		Findings: []Finding{},
	}

	for _, ve := range schema.ValidationErrors(err) {
		r.Findings = append(r.Findings, Finding{
			Kind:     string(ve.Kind),
			Key:      ve.Key,
			Expected: ve.Expected,
			Got:      ve.Got,
			Message:  ve.Error(),
		})
	}
	r.Valid = len(r.Findings) == 0
	return r
}

// Counts returns the number of findings per kind.
func (r *Report) Counts() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Findings {
		counts[f.Kind]++
	}
	return counts
}
