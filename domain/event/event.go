package event

import (
	"chat-fanout/domain/chat"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	MessageWasSentType      Type = "MESSAGE_WAS_SENT"
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
)

// Event is the envelope travelling from the engine to the sinks
type Event struct {
	ID        uuid.UUID
	Type      Type
	CreatedAt time.Time
	Payload   any
}

func NewEvent(eventType Type, payload any, at time.Time) Event {
	return Event{ID: uuid.New(), Type: eventType, CreatedAt: at, Payload: payload}
}

// MessageWasSent is raised once a message and its deliveries are committed
type MessageWasSent struct {
	Message    chat.Message
	Recipients int
	// Lang is the ISO 639-1 code detected on the body, empty when unknown
	Lang     string
	Censored []string
	At       time.Time
}

type WorkerRestartedAfterPanic struct {
	WorkerName string
}
