package runtime

import (
	"chat-fanout/domain/event"
	"log/slog"
)

// ChannelPublisher buffers events for the fanout worker.
// A full buffer drops the event instead of slowing down the send path.
type ChannelPublisher struct {
	log    *slog.Logger
	events chan event.Event
}

func NewChannelPublisher(log *slog.Logger, bufferSize int) *ChannelPublisher {
	return &ChannelPublisher{log: log, events: make(chan event.Event, bufferSize)}
}

func (p *ChannelPublisher) Publish(e event.Event) {
	select {
	case p.events <- e:
	default:
		p.log.Warn("Event channel full, dropping event", "type", e.Type, "event_id", e.ID)
	}
}

func (p *ChannelPublisher) Events() <-chan event.Event {
	return p.events
}

// Len is the number of events waiting for the fanout
func (p *ChannelPublisher) Len() int {
	return len(p.events)
}

func (p *ChannelPublisher) Cap() int {
	return cap(p.events)
}
