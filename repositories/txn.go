package repositories

import (
	"chat-fanout/domain/chat"
	apperrors "chat-fanout/errors"
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// update runs fn in a read-write transaction.
// A conflicting commit is reported as a transaction failure so callers can retry the whole operation.
func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := db.Update(fn)
	if errors.Is(err, badger.ErrConflict) || errors.Is(err, badger.ErrTxnTooBig) {
		return fmt.Errorf("%w: %v", apperrors.ErrTransactionFailure, err)
	}
	return err
}

func view(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.View(fn)
}

func getValue(txn *badger.Txn, key []byte, notFound error) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// keyIDs collects the trailing id of every key under prefix, ascending
func keyIDs(txn *badger.Txn, prefix []byte) ([]uint64, error) {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	var ids []uint64
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		id, err := trailingID(it.Item().Key())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getConversation(txn *badger.Txn, id chat.ConversationID) (chat.Conversation, error) {
	raw, err := getValue(txn, conversationKey(id), apperrors.ErrConversationNotFound)
	if err != nil {
		return chat.Conversation{}, err
	}
	conversation, err := decodeConversation(raw)
	if err != nil {
		return chat.Conversation{}, err
	}
	conversation.Participants, err = participants(txn, id)
	return conversation, err
}

func putConversation(txn *badger.Txn, conversation chat.Conversation) error {
	raw, err := encodeConversation(conversation)
	if err != nil {
		return err
	}
	return txn.Set(conversationKey(conversation.ID), raw)
}

// participants reads the membership of a conversation within the transaction.
// Inside an update, the keys read take part in conflict detection.
func participants(txn *badger.Txn, id chat.ConversationID) ([]chat.ProfileID, error) {
	ids, err := keyIDs(txn, membersOf(id))
	if err != nil {
		return nil, err
	}
	profiles := make([]chat.ProfileID, len(ids))
	for i, profileID := range ids {
		profiles[i] = chat.ProfileID(profileID)
	}
	return profiles, nil
}

func conversationOfMessage(txn *badger.Txn, messageID chat.MessageID) (chat.ConversationID, error) {
	raw, err := getValue(txn, messageLocatorKey(messageID), apperrors.ErrMessageNotFound)
	if err != nil {
		return 0, err
	}
	id, err := decodeID(raw)
	return chat.ConversationID(id), err
}

func getMessage(txn *badger.Txn, conversationID chat.ConversationID, messageID chat.MessageID) (chat.Message, error) {
	raw, err := getValue(txn, messageKey(conversationID, messageID), apperrors.ErrMessageNotFound)
	if err != nil {
		return chat.Message{}, err
	}
	message, err := decodeMessage(raw)
	if err != nil {
		return chat.Message{}, err
	}
	message.Attachments, err = attachments(txn, messageID)
	return message, err
}

func attachments(txn *badger.Txn, messageID chat.MessageID) ([]chat.Attachment, error) {
	prefix := attachmentsOf(messageID)
	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := txn.NewIterator(options)
	defer it.Close()

	var result []chat.Attachment
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		raw, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		attachment, err := decodeAttachment(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, nil
}

func getDelivery(txn *badger.Txn, key []byte) (chat.Delivery, error) {
	raw, err := getValue(txn, key, apperrors.ErrDeliveryNotFound)
	if err != nil {
		return chat.Delivery{}, err
	}
	return decodeDelivery(raw)
}

func putDelivery(txn *badger.Txn, delivery chat.Delivery) error {
	raw, err := encodeDelivery(delivery)
	if err != nil {
		return err
	}
	return txn.Set(deliveryKey(delivery.ProfileID, delivery.ConversationID, delivery.MessageID), raw)
}

// lastMessage reads the message with the highest id of a conversation
func lastMessage(txn *badger.Txn, conversationID chat.ConversationID) (chat.Message, bool, error) {
	prefix := messagesOf(conversationID)
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	options.Prefix = prefix
	options.Reverse = true
	it := txn.NewIterator(options)

	it.Seek(seekLast(prefix))
	if !it.ValidForPrefix(prefix) {
		it.Close()
		return chat.Message{}, false, nil
	}
	id, err := trailingID(it.Item().Key())
	it.Close()
	if err != nil {
		return chat.Message{}, false, err
	}
	message, err := getMessage(txn, conversationID, chat.MessageID(id))
	return message, err == nil, err
}

func countUnread(deliveries []chat.Delivery) int {
	count := 0
	for _, delivery := range deliveries {
		if !delivery.IsSeen && !delivery.IsDeleted() {
			count++
		}
	}
	return count
}
