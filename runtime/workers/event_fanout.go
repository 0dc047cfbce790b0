package workers

import (
	"chat-fanout/contract"
	"chat-fanout/domain/event"
	"context"
	"log/slog"
	"sync"
	"time"
)

// EventFanout broadcasts domain events to in-process sinks.
//
// It is best effort: no durability, no retries, a slow sink is cut by sinkTimeout.
// It serves side effects (logs, counters), never the domain state,
// which is already committed when an event is published.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.Event
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.Event, sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, events: events, sinkTimeout: sinkTimeout, sinks: sinks}
}

// Run dispatches events until the context is done, then drains what is left in the channel
func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			w.log.Debug("Context done, event fanout stopped")
			return nil
		}
	}
}

// Fanout hands the event to every sink concurrently and waits for all of them
func (w *EventFanout) Fanout(ctx context.Context, evt event.Event) {
	var wg sync.WaitGroup
	for _, sink := range w.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := sink.Consume(sinkCtx, evt); err != nil {
				w.log.Warn("Sink failed to consume event", "type", evt.Type, "event_id", evt.ID, "error", err)
			}
		}()
	}
	wg.Wait()
}

func (w *EventFanout) drain(ctx context.Context) {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		default:
			return
		}
	}
}
