package workers

import (
	"chat-fanout/domain/chat"
	"chat-fanout/domain/event"
	"chat-fanout/mocks"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func messageWasSent() event.Event {
	now := time.Now().UTC()
	return event.NewEvent(event.MessageWasSentType, event.MessageWasSent{Message: chat.Message{ID: 1}, Recipients: 2, At: now}, now)
}

func TestEventFanout_Fanout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)
	evt := messageWasSent()

	// Given two sinks
	var consumed atomic.Int32
	for _, sink := range []*mocks.MockEventSink{first, second} {
		sink.EXPECT().Consume(gomock.Any(), evt).DoAndReturn(func(ctx context.Context, e event.Event) error {
			consumed.Add(1)
			return nil
		}).Times(1)
	}

	fanout := NewEventFanout(log, make(chan event.Event), time.Second, first, second)

	// When an event is fanned out
	fanout.Fanout(context.Background(), evt)

	// Then both sinks consumed it
	req.Equal(int32(2), consumed.Load())
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	slow := mocks.NewMockEventSink(ctrl)
	fast := mocks.NewMockEventSink(ctrl)

	// Given a sink waiting for its deadline
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, e event.Event) error {
		<-ctx.Done()
		return ctx.Err()
	}).Times(1)
	fast.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	fanout := NewEventFanout(log, make(chan event.Event), 20*time.Millisecond, slow, fast)

	// Then the fanout returns once the timeout is hit
	start := time.Now()
	fanout.Fanout(context.Background(), messageWasSent())
	req.Less(time.Since(start), time.Second)
}

func TestEventFanout_Run_Drains_On_Shutdown(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockEventSink(ctrl)

	events := make(chan event.Event, 3)
	events <- messageWasSent()
	events <- messageWasSent()
	events <- messageWasSent()

	var consumed atomic.Int32
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, e event.Event) error {
		consumed.Add(1)
		return nil
	}).Times(3)

	// Given a context already canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When the worker runs, every buffered event is still delivered
	req.NoError(NewEventFanout(log, events, time.Second, sink).Run(ctx))
	req.Equal(int32(3), consumed.Load())
}
