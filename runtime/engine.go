//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=../mocks/mock_engine.go -package=mocks

// Package runtime turns commands into committed messages and propagates what happened.
// It orchestrates the system without containing business rules.
package runtime

import (
	"chat-fanout/contract"
	"chat-fanout/domain/chat"
	"chat-fanout/domain/event"
	"chat-fanout/errors"
	"chat-fanout/moderation"
	"chat-fanout/repositories"
	"context"
	"fmt"
	"log/slog"
	"time"
)

type IEngine interface {
	Send(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
}

// Engine is the fan-out engine.
// A send stages the attachments first, then commits the message with one delivery
// per participant, then publishes MessageWasSent.
type Engine struct {
	log              *slog.Logger
	repository       repositories.IMessageRepository
	store            contract.AttachmentStore
	publisher        contract.EventPublisher
	sanitizer        *moderation.Sanitizer
	maxContentLength int
}

func NewEngine(log *slog.Logger, repository repositories.IMessageRepository,
	store contract.AttachmentStore, publisher contract.EventPublisher, maxContentLength int) *Engine {
	return &Engine{
		log:              log,
		repository:       repository,
		store:            store,
		publisher:        publisher,
		maxContentLength: maxContentLength,
	}
}

func (e *Engine) WithSanitizer(sanitizer *moderation.Sanitizer) *Engine {
	e.sanitizer = sanitizer
	return e
}

func (e *Engine) Send(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return chat.Message{}, err
	}
	if err := chat.ValidateBodyLength(cmd.Body, e.maxContentLength); err != nil {
		return chat.Message{}, err
	}

	sanitized := moderation.Sanitized{Body: cmd.Body, Lang: moderation.DetectLanguage(cmd.Body)}
	if e.sanitizer != nil {
		sanitized = e.sanitizer.Sanitize(cmd.Body)
	}

	files, err := e.stage(ctx, cmd)
	if err != nil {
		return chat.Message{}, err
	}

	now := time.Now().UTC()
	sent, err := e.repository.Send(ctx, chat.MessageDraft{
		ConversationID: cmd.Conversation.ID,
		SenderID:       cmd.SenderID,
		Body:           sanitized.Body,
		Type:           cmd.MessageType(),
		Files:          files,
		At:             now,
	})
	if err != nil {
		e.discard(ctx, files)
		return chat.Message{}, err
	}

	e.publisher.Publish(event.NewEvent(event.MessageWasSentType, event.MessageWasSent{
		Message:    sent.Message,
		Recipients: len(sent.Deliveries),
		Lang:       sanitized.Lang,
		Censored:   sanitized.Censored,
		At:         now,
	}, now))
	return sent.Message, nil
}

// stage stores every attachment before the message transaction opens.
// A single failure aborts the send and removes what was already stored.
func (e *Engine) stage(ctx context.Context, cmd chat.SendMessageCommand) ([]chat.StoredFile, error) {
	if len(cmd.Attachments) == 0 {
		return nil, nil
	}
	if e.store == nil {
		return nil, fmt.Errorf("%w: no attachment store configured", errors.ErrAttachmentStore)
	}
	files := make([]chat.StoredFile, 0, len(cmd.Attachments))
	for _, upload := range cmd.Attachments {
		file, err := e.store.Store(ctx, upload, cmd.SenderID)
		if err != nil {
			e.discard(ctx, files)
			return nil, fmt.Errorf("%w: %s: %v", errors.ErrAttachmentStore, upload.Name, err)
		}
		files = append(files, file)
	}
	return files, nil
}

// discard removes staged files even when the caller's context is already done
func (e *Engine) discard(ctx context.Context, files []chat.StoredFile) {
	ctx = context.WithoutCancel(ctx)
	for _, file := range files {
		if err := e.store.Remove(ctx, file.Href); err != nil {
			e.log.Warn("Staged attachment not removed", "href", file.Href, "error", err)
		}
	}
}
