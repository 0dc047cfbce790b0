package sink

import (
	"chat-fanout/domain/event"
	"chat-fanout/errors"
	"context"
	"log/slog"
)

// LogSink writes one structured line per event
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Consume(ctx context.Context, e event.Event) error {
	switch e.Type {
	case event.MessageWasSentType:
		payload, ok := e.Payload.(event.MessageWasSent)
		if !ok {
			return errors.ErrInvalidPayload
		}
		s.log.InfoContext(ctx, "Message was sent",
			"conversation_id", payload.Message.ConversationID,
			"message_id", payload.Message.ID,
			"sender_id", payload.Message.SenderID,
			"recipients", payload.Recipients,
			"attachments", len(payload.Message.Attachments),
			"lang", payload.Lang,
			"censored", len(payload.Censored),
		)
	case event.RestartedAfterPanicType:
		payload, ok := e.Payload.(event.WorkerRestartedAfterPanic)
		if !ok {
			return errors.ErrInvalidPayload
		}
		s.log.WarnContext(ctx, "Worker restarted after panic", "name", payload.WorkerName)
	}
	return nil
}
