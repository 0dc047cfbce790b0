package sink

import (
	"bytes"
	"chat-fanout/domain/chat"
	"chat-fanout/domain/event"
	"chat-fanout/errors"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogSink_Consume(t *testing.T) {
	req := require.New(t)
	var buffer bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buffer, nil)))
	now := time.Now().UTC()

	// When a sent message is consumed
	err := sink.Consume(context.Background(), event.NewEvent(event.MessageWasSentType, event.MessageWasSent{
		Message:    chat.Message{ID: 12, ConversationID: 3, SenderID: 7},
		Recipients: 4,
		Lang:       "en",
		At:         now,
	}, now))
	req.NoError(err)

	// Then a structured line is written
	req.Contains(buffer.String(), `"msg":"Message was sent"`)
	req.Contains(buffer.String(), `"message_id":12`)
	req.Contains(buffer.String(), `"recipients":4`)
	req.Contains(buffer.String(), `"lang":"en"`)
}

func TestLogSink_Invalid_Payload(t *testing.T) {
	req := require.New(t)
	sink := NewLogSink(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	err := sink.Consume(context.Background(), event.NewEvent(event.MessageWasSentType, 42, time.Now()))
	req.ErrorIs(err, errors.ErrInvalidPayload)

	err = sink.Consume(context.Background(), event.NewEvent(event.RestartedAfterPanicType, event.WorkerRestartedAfterPanic{WorkerName: "EventFanout"}, time.Now()))
	req.NoError(err)
}
