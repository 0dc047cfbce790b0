package runtime

import (
	"chat-fanout/domain/event"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestChannelPublisher_Drops_When_Full(t *testing.T) {
	req := require.New(t)
	publisher := NewChannelPublisher(logs.GetLoggerFromLevel(slog.LevelError), 1)
	now := time.Now()

	// Given a buffer of one event
	first := event.NewEvent(event.MessageWasSentType, event.MessageWasSent{Recipients: 1}, now)
	publisher.Publish(first)

	// When a second event is published it does not block
	done := make(chan struct{})
	go func() {
		publisher.Publish(event.NewEvent(event.MessageWasSentType, event.MessageWasSent{Recipients: 2}, now))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Publish blocked on a full channel")
	}

	// Then only the first one is kept
	req.Equal(first.ID, (<-publisher.Events()).ID)
	req.Empty(publisher.Events())
}

func TestChannelPublisher_Backlog(t *testing.T) {
	req := require.New(t)
	publisher := NewChannelPublisher(logs.GetLoggerFromLevel(slog.LevelError), 4)

	publisher.Publish(event.NewEvent(event.MessageWasSentType, event.MessageWasSent{}, time.Now().UTC()))
	req.Equal(1, publisher.Len())
	req.Equal(4, publisher.Cap())
}
