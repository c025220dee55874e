package manager

import "sync"

// MemoryPublisher keeps published events in order. Limit, when positive,
// bounds the history to the most recent events.
type MemoryPublisher struct {
	Limit int

	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	if p.Limit > 0 && len(p.events) > p.Limit {
		p.events = append(p.events[:0:0], p.events[len(p.events)-p.Limit:]...)
	}
}

// Events returns a copy of the retained history.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Names returns the retained event names in order.
func (p *MemoryPublisher) Names() []string {
	evts := p.Events()
	out := make([]string, len(evts))
	for i, e := range evts {
		out[i] = e.Name
	}
	return out
}
