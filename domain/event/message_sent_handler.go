package event

import (
	"chat-fanout/errors"
	"context"
	"log/slog"
)

// DeliveriesType counts the delivery records created by sent messages
const DeliveriesType Type = "DELIVERIES"

// MessageSentHandler handles events when a message is sent.
// It counts sent messages and the deliveries they fanned out to.
type MessageSentHandler struct {
	log     *slog.Logger
	counter *Counter
}

var _ Handler = (*MessageSentHandler)(nil)

func NewMessageSentHandler(log *slog.Logger, counter *Counter) *MessageSentHandler {
	return &MessageSentHandler{log: log, counter: counter}
}

func (h *MessageSentHandler) Handle(event Event) {
	switch event.Type {
	case MessageWasSentType:
		payload, ok := event.Payload.(MessageWasSent)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error(), "event_id", event.ID)
			return
		}
		h.counter.Increment(MessageWasSentType)
		h.counter.Add(DeliveriesType, uint64(payload.Recipients))
	}
}

// Consume lets the handler be registered as a sink of the event fanout
func (h *MessageSentHandler) Consume(_ context.Context, e Event) error {
	h.Handle(e)
	return nil
}
