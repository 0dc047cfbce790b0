//go:generate go run go.uber.org/mock/mockgen -source=delivery.go -destination=../mocks/mock_delivery_repository.go -package=mocks
package repositories

import (
	"chat-fanout/domain/chat"
	apperrors "chat-fanout/errors"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IDeliveryRepository interface {
	Get(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) (chat.Delivery, error)
	ForMessage(ctx context.Context, messageID chat.MessageID) ([]chat.Delivery, error)
	Trash(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) error
	MarkRead(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) error
	Clear(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error)
	MarkConversationRead(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error)
	UnreadCount(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error)
}

type DeliveryRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDeliveryRepository(db *badger.DB, log *slog.Logger) DeliveryRepository {
	return DeliveryRepository{db: db, log: log}
}

// Get returns the delivery of a message for a profile, soft deleted or not
func (r DeliveryRepository) Get(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) (chat.Delivery, error) {
	var delivery chat.Delivery
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		delivery, err = lookupDelivery(txn, messageID, profileID)
		return err
	})
	return delivery, err
}

// ForMessage lists every delivery of a message ordered by recipient
func (r DeliveryRepository) ForMessage(ctx context.Context, messageID chat.MessageID) ([]chat.Delivery, error) {
	var deliveries []chat.Delivery
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		conversationID, err := conversationOfMessage(txn, messageID)
		if err != nil {
			return err
		}
		recipients, err := keyIDs(txn, recipientsOf(messageID))
		if err != nil {
			return err
		}
		for _, recipient := range recipients {
			delivery, err := getDelivery(txn, deliveryKey(chat.ProfileID(recipient), conversationID, messageID))
			if err != nil {
				return err
			}
			deliveries = append(deliveries, delivery)
		}
		return nil
	})
	return deliveries, err
}

// Trash hides a message for one profile only.
// Trashing an already trashed delivery is a no-op.
func (r DeliveryRepository) Trash(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) error {
	return r.change(ctx, messageID, profileID, func(delivery *chat.Delivery, at time.Time) bool {
		return delivery.Trash(at)
	})
}

// MarkRead flags the delivery of one profile as seen, idempotent
func (r DeliveryRepository) MarkRead(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) error {
	return r.change(ctx, messageID, profileID, func(delivery *chat.Delivery, at time.Time) bool {
		return delivery.MarkSeen(at)
	})
}

// Clear soft deletes every delivery of a profile in a conversation and returns how many changed.
// Nothing to clear is not an error.
func (r DeliveryRepository) Clear(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error) {
	count, err := r.changeAll(ctx, conversationID, profileID, func(delivery *chat.Delivery, at time.Time) bool {
		return delivery.Trash(at)
	})
	if err == nil {
		r.log.Debug("Conversation cleared", "conversation_id", conversationID, "profile_id", profileID, "deliveries", count)
	}
	return count, err
}

// MarkConversationRead flags every delivery of a profile in a conversation as seen and returns how many changed
func (r DeliveryRepository) MarkConversationRead(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error) {
	return r.changeAll(ctx, conversationID, profileID, func(delivery *chat.Delivery, at time.Time) bool {
		return delivery.MarkSeen(at)
	})
}

// UnreadCount counts the deliveries of a profile in a conversation which are neither seen nor deleted
func (r DeliveryRepository) UnreadCount(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error) {
	count := 0
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		deliveries, err := scanDeliveries(txn, deliveriesOf(profileID, conversationID))
		count = countUnread(deliveries)
		return err
	})
	return count, err
}

func (r DeliveryRepository) change(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID, apply func(*chat.Delivery, time.Time) bool) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		delivery, err := lookupDelivery(txn, messageID, profileID)
		if err != nil {
			return err
		}
		if !apply(&delivery, time.Now().UTC()) {
			return nil
		}
		return putDelivery(txn, delivery)
	})
}

func (r DeliveryRepository) changeAll(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID, apply func(*chat.Delivery, time.Time) bool) (int, error) {
	count := 0
	now := time.Now().UTC()
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		count = 0
		deliveries, err := scanDeliveries(txn, deliveriesOf(profileID, conversationID))
		if err != nil {
			return err
		}
		for _, delivery := range deliveries {
			if !apply(&delivery, now) {
				continue
			}
			if err = putDelivery(txn, delivery); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

// lookupDelivery resolves the conversation of the message to build the delivery key
func lookupDelivery(txn *badger.Txn, messageID chat.MessageID, profileID chat.ProfileID) (chat.Delivery, error) {
	conversationID, err := conversationOfMessage(txn, messageID)
	if errors.Is(err, apperrors.ErrMessageNotFound) {
		return chat.Delivery{}, apperrors.ErrDeliveryNotFound
	}
	if err != nil {
		return chat.Delivery{}, err
	}
	return getDelivery(txn, deliveryKey(profileID, conversationID, messageID))
}

// scanDeliveries reads every delivery under prefix, the iterator is closed before any write happens
func scanDeliveries(txn *badger.Txn, prefix []byte) ([]chat.Delivery, error) {
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	var deliveries []chat.Delivery
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		raw, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		delivery, err := decodeDelivery(raw)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, delivery)
	}
	return deliveries, nil
}
