package logging

import (
	"context"
	"maps"
	"slices"
	"time"
)

type EventType string

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// EntityKind classifies the subject of a stage event.
type EntityKind string

const (
	EntityKindUnknown   EntityKind = "unknown"
	EntityKindProp      EntityKind = "prop"
	EntityKindActor     EntityKind = "actor"
	EntityKindMachinery EntityKind = "machinery"
	EntityKindStage     EntityKind = "stage"
)

// Event is one structured stage occurrence: an edit, a collision, a
// machinery toggle, a frame-budget breach.
type Event struct {
	Type     EventType      `json:"type"`
	Frame    uint64         `json:"frame"`
	Time     time.Time      `json:"time"`
	Subject  EntityRef      `json:"subject"`
	Targets  []EntityRef    `json:"targets,omitempty"`
	Severity Severity       `json:"severity"`
	Category string         `json:"category,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// EntityRef points an event at a scene object or machinery element.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

const (
	CategoryEditing    = "editing"
	CategoryPhysics    = "physics"
	CategorySimulation = "simulation"
	CategorySystem     = "system"
)

// Publisher accepts events for asynchronous delivery to the sinks.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// PublisherFunc adapts a function into a Publisher.
type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// NopPublisher drops every event; useful default for tests.
func NopPublisher() Publisher {
	return nopPublisher{}
}

// WithFields decorates a publisher so every event carries the given extra
// fields unless the event already sets them.
func WithFields(next Publisher, fields map[string]any) Publisher {
	if next == nil || len(fields) == 0 {
		return next
	}
	cloned := make(map[string]any, len(fields))
	for k, v := range fields {
		cloned[k] = v
	}
	return &fieldPublisher{next: next, fields: cloned}
}

type fieldPublisher struct {
	next   Publisher
	fields map[string]any
}

func (p *fieldPublisher) Publish(ctx context.Context, event Event) {
	if p.next == nil {
		return
	}
	event = event.Clone()
	if event.Extra == nil {
		event.Extra = make(map[string]any, len(p.fields))
	}
	for k, v := range p.fields {
		if _, exists := event.Extra[k]; !exists {
			event.Extra[k] = v
		}
	}
	p.next.Publish(ctx, event)
}

// Clone deep-copies the shared slices and maps so a sink may retain the
// event past the publish call.
func (e Event) Clone() Event {
	cloned := e
	if len(e.Targets) > 0 {
		cloned.Targets = slices.Clone(e.Targets)
	}
	if e.Extra != nil {
		cloned.Extra = maps.Clone(e.Extra)
	}
	return cloned
}
