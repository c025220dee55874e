package manager

import "github.com/rs/zerolog"

// LogPublisher writes events to a zerolog logger at debug level, errors at warn.
type LogPublisher struct {
	Logger zerolog.Logger
}

func (p LogPublisher) Publish(e Event) {
	ev := p.Logger.Debug()
	if e.Name == EventLoadError || e.Name == EventChatError {
		ev = p.Logger.Warn()
	}
	ev.Str("event", e.Name).Str("model", e.Model).Fields(e.Fields).Msg("manager event")
}
