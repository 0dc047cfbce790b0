package repositories

import (
	"chat-fanout/domain/chat"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Sequences hands out monotonic ids.
// Ids are leased by batches of bandwidth, a crash leaves a gap but never a duplicate.
type Sequences struct {
	conversation *badger.Sequence
	message      *badger.Sequence
	attachment   *badger.Sequence
}

func NewSequences(db *badger.DB, bandwidth uint64) (*Sequences, error) {
	if bandwidth == 0 {
		bandwidth = 1
	}
	conversation, err := db.GetSequence([]byte(conversationSequence), bandwidth)
	if err != nil {
		return nil, fmt.Errorf("conversation sequence: %w", err)
	}
	message, err := db.GetSequence([]byte(messageSequence), bandwidth)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("message sequence: %w", err), conversation.Release())
	}
	attachment, err := db.GetSequence([]byte(attachmentSequence), bandwidth)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("attachment sequence: %w", err), conversation.Release(), message.Release())
	}
	return &Sequences{conversation: conversation, message: message, attachment: attachment}, nil
}

// Ids start at 1, 0 is kept as the missing id
func (s *Sequences) NextConversationID() (chat.ConversationID, error) {
	n, err := s.conversation.Next()
	return chat.ConversationID(n + 1), err
}

func (s *Sequences) NextMessageID() (chat.MessageID, error) {
	n, err := s.message.Next()
	return chat.MessageID(n + 1), err
}

func (s *Sequences) NextAttachmentID() (chat.AttachmentID, error) {
	n, err := s.attachment.Next()
	return chat.AttachmentID(n + 1), err
}

// Release returns the unused leases, must be called before closing the database
func (s *Sequences) Release() error {
	return errors.Join(s.conversation.Release(), s.message.Release(), s.attachment.Release())
}
