//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-fanout/domain/chat"
	apperrors "chat-fanout/errors"
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type IMessageRepository interface {
	Send(ctx context.Context, draft chat.MessageDraft) (chat.SentMessage, error)
	Get(ctx context.Context, id chat.MessageID) (chat.Message, error)
	Summaries(ctx context.Context, profileID chat.ProfileID) ([]chat.ConversationSummary, error)
	Feed(ctx context.Context, query chat.GetMessagesCommand) (chat.Page[chat.FeedItem], error)
}

type MessageRepository struct {
	db        *badger.DB
	log       *slog.Logger
	sequences *Sequences
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, sequences *Sequences) MessageRepository {
	return MessageRepository{db: db, log: log, sequences: sequences}
}

// Send persists the message, its attachment references and one delivery per current participant.
// Everything is written in a single transaction: either all of it is committed or nothing is.
// The membership is read inside that transaction, a concurrent change of the members read
// makes the commit fail with a transaction failure.
// A conversation without participants gets the message and no delivery.
func (r MessageRepository) Send(ctx context.Context, draft chat.MessageDraft) (chat.SentMessage, error) {
	messageID, err := r.sequences.NextMessageID()
	if err != nil {
		return chat.SentMessage{}, err
	}
	attachmentIDs := make([]chat.AttachmentID, len(draft.Files))
	for i := range draft.Files {
		if attachmentIDs[i], err = r.sequences.NextAttachmentID(); err != nil {
			return chat.SentMessage{}, err
		}
	}

	message := chat.Message{
		ID:             messageID,
		ConversationID: draft.ConversationID,
		SenderID:       draft.SenderID,
		Body:           draft.Body,
		Type:           draft.Type,
		CreatedAt:      draft.At,
		UpdatedAt:      draft.At,
		Attachments: lo.Map(draft.Files, func(file chat.StoredFile, i int) chat.Attachment {
			return chat.Attachment{
				ID:         attachmentIDs[i],
				EntityType: chat.AttachmentEntityMessage,
				EntityID:   messageID,
				Href:       file.Href,
				Extension:  file.Extension,
				Type:       file.Type,
				MimeType:   file.MimeType,
				CreatedAt:  draft.At,
			}
		}),
	}

	var deliveries []chat.Delivery
	err = update(ctx, r.db, func(txn *badger.Txn) error {
		conversation, err := getConversation(txn, draft.ConversationID)
		if err != nil {
			return err
		}
		raw, err := encodeMessage(message)
		if err != nil {
			return err
		}
		if err = txn.Set(messageKey(message.ConversationID, message.ID), raw); err != nil {
			return err
		}
		if err = txn.Set(messageLocatorKey(message.ID), encodeID(uint64(message.ConversationID))); err != nil {
			return err
		}
		for _, attachment := range message.Attachments {
			raw, err = encodeAttachment(attachment)
			if err != nil {
				return err
			}
			if err = txn.Set(attachmentKey(message.ID, attachment.ID), raw); err != nil {
				return err
			}
		}

		deliveries = lo.Map(conversation.Participants, func(recipient chat.ProfileID, _ int) chat.Delivery {
			return chat.NewDelivery(message, recipient)
		})
		for _, delivery := range deliveries {
			if err = putDelivery(txn, delivery); err != nil {
				return err
			}
			if err = txn.Set(deliveryLocatorKey(message.ID, delivery.ProfileID), []byte{}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return chat.SentMessage{}, err
	}

	r.log.Debug("Message sent",
		"conversation_id", message.ConversationID,
		"message_id", message.ID,
		"recipients", len(deliveries),
	)
	return chat.SentMessage{Message: message, Deliveries: deliveries}, nil
}

func (r MessageRepository) Get(ctx context.Context, id chat.MessageID) (chat.Message, error) {
	var message chat.Message
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		conversationID, err := conversationOfMessage(txn, id)
		if err != nil {
			return err
		}
		message, err = getMessage(txn, conversationID, id)
		return err
	})
	return message, err
}

// Summaries lists the conversations of a profile holding at least one message, with their last message,
// the profile's live delivery of it and its unread count.
// Everything is read from the same snapshot.
func (r MessageRepository) Summaries(ctx context.Context, profileID chat.ProfileID) ([]chat.ConversationSummary, error) {
	var summaries []chat.ConversationSummary
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		ids, err := keyIDs(txn, conversationsOf(profileID))
		if err != nil {
			return err
		}
		for _, id := range ids {
			conversationID := chat.ConversationID(id)
			last, found, err := lastMessage(txn, conversationID)
			if err != nil {
				return err
			}
			if !found {
				continue
			}
			summary := chat.ConversationSummary{ConversationID: conversationID, LastMessage: last}

			delivery, err := getDelivery(txn, deliveryKey(profileID, conversationID, last.ID))
			switch {
			case errors.Is(err, apperrors.ErrDeliveryNotFound):
			case err != nil:
				return err
			case !delivery.IsDeleted():
				summary.Delivery = &delivery
			}

			deliveries, err := scanDeliveries(txn, deliveriesOf(profileID, conversationID))
			if err != nil {
				return err
			}
			summary.UnreadCount = countUnread(deliveries)
			summaries = append(summaries, summary)
		}
		return nil
	})
	return summaries, err
}

// Feed returns the messages of a conversation a profile still holds a delivery for.
// Soft deleted deliveries are skipped, messages are ordered by id following the requested sorting.
func (r MessageRepository) Feed(ctx context.Context, query chat.GetMessagesCommand) (chat.Page[chat.FeedItem], error) {
	query = query.WithDefaults()
	if err := query.Validate(); err != nil {
		return chat.Page[chat.FeedItem]{}, err
	}
	offset := chat.Offset(query.PerPage, query.Page)
	items := make([]chat.FeedItem, 0, query.PerPage)
	total := 0

	err := view(ctx, r.db, func(txn *badger.Txn) error {
		prefix := deliveriesOf(query.ProfileID, query.ConversationID)
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		options.Reverse = query.Sorting == chat.Descending
		it := txn.NewIterator(options)
		defer it.Close()

		seek := prefix
		if options.Reverse {
			seek = seekLast(prefix)
		}
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			raw, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			delivery, err := decodeDelivery(raw)
			if err != nil {
				return err
			}
			if delivery.IsDeleted() {
				continue
			}
			total++
			if total <= offset || len(items) == query.PerPage {
				continue
			}
			message, err := getMessage(txn, query.ConversationID, delivery.MessageID)
			if err != nil {
				return err
			}
			items = append(items, chat.FeedItem{Message: message, IsSeen: delivery.IsSeen})
		}
		return nil
	})
	if err != nil {
		return chat.Page[chat.FeedItem]{}, err
	}
	return chat.NewPage(items, total, query.PerPage, query.Page), nil
}
