package manager

// Event names published by the manager.
const (
	EventLoadStart  = "load_start"
	EventLoadDone   = "load_done"
	EventLoadError  = "load_error"
	EventUnloadDone = "unload_done"
	EventChatDone   = "chat_done"
	EventChatError  = "chat_error"
)

// Event represents a manager lifecycle event: a name, the model path it
// concerns and optional fields.
type Event struct {
	Name   string
	Model  string
	Fields map[string]any
}

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic. Publish is called
// from request goroutines and may run concurrently.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
