package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventParsed    EventType = "parsed"
	EventValidated EventType = "validated"
)

// Document roles used in events and metrics.
const (
	DocumentConfig = "config"
	DocumentSchema = "schema"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ParseEvent is emitted after a config or schema document was parsed, successfully or not.
type ParseEvent struct {
	EventBase
	Document string `json:"document"` // DocumentConfig or DocumentSchema
	Name     string `json:"name,omitempty"`
	Keys     int    `json:"keys"`
	Err      error  `json:"-"`
}

// ValidateEvent is emitted after a config was checked against a schema.
type ValidateEvent struct {
	EventBase
	Config   string         `json:"config,omitempty"`
	Schema   string         `json:"schema,omitempty"`
	Findings map[string]int `json:"findings"` // count per finding kind
	Duration time.Duration  `json:"duration"`
}

// Valid reports whether the check produced no findings.
func (e *ValidateEvent) Valid() bool {
	for _, n := range e.Findings {
		if n > 0 {
			return false
		}
	}
	return true
}

// Hooks defines callbacks for checker observability.
type Hooks struct {
	OnParsed    func(context.Context, *ParseEvent)
	OnValidated func(context.Context, *ValidateEvent)
}

// Merge returns hooks calling h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnParsed: func(ctx context.Context, e *ParseEvent) {
			if h.OnParsed != nil {
				h.OnParsed(ctx, e)
			}
			if other.OnParsed != nil {
				other.OnParsed(ctx, e)
			}
		},
		OnValidated: func(ctx context.Context, e *ValidateEvent) {
			if h.OnValidated != nil {
				h.OnValidated(ctx, e)
			}
			if other.OnValidated != nil {
				other.OnValidated(ctx, e)
			}
		},
	}
}
