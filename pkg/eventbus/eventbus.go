package eventbus

import "context"

// Event is anything that can travel over a Bus.
type Event interface {
	EventType() string
}

// HandlerFunc processes a single event.
type HandlerFunc func(ctx context.Context, event Event) error

// Bus publishes events to the handlers registered for their type.
type Bus interface {
	Emit(ctx context.Context, event Event) error
	Register(eventType string, handler HandlerFunc)
}
