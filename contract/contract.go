//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-fanout/domain/chat"
	"chat-fanout/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging during supervision.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// EventPublisher must never block the caller
type EventPublisher interface {
	Publish(e event.Event)
}

// AttachmentStore persists uploaded files outside the message store.
// Only the returned reference is kept with the message.
type AttachmentStore interface {
	Store(ctx context.Context, upload chat.Upload, ownerID chat.ProfileID) (chat.StoredFile, error)
	Remove(ctx context.Context, href string) error
}

// Backlog exposes how full a buffer is, sampling it never blocks
type Backlog interface {
	Len() int
	Cap() int
}
