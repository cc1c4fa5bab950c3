package events

import (
	"context"

	"github.com/billie-coop/fastclick/internal/debounce"
)

// EventType identifies the type of event
type EventType string

const (
	// Activation events
	ActivationAllowedEvent    EventType = "activation.allowed"
	ActivationSuppressedEvent EventType = "activation.suppressed"

	// Scope events
	ScopeResetEvent EventType = "scope.reset"

	// UI events
	StatusMessageEvent EventType = "ui.status"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// Event payload types

type ActivationPayload struct {
	Activation debounce.Activation
}

type ScopePayload struct {
	Scope string
}

type StatusMessagePayload struct {
	Message string
	Type    string // StatusInfo or StatusError
}

// Status message types
const (
	StatusInfo  = "info"
	StatusError = "error"
)

// Observe publishes a debounce decision, making the broker usable as a
// debounce.Observer.
func (b *Broker) Observe(_ context.Context, a debounce.Activation) {
	typ := ActivationAllowedEvent
	if !a.Allowed {
		typ = ActivationSuppressedEvent
	}
	b.Publish(Event{Type: typ, Payload: ActivationPayload{Activation: a}})
}
