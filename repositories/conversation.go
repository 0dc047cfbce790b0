//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"chat-fanout/domain/chat"
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IConversationRepository interface {
	Create(ctx context.Context, participants []chat.ProfileID) (chat.Conversation, error)
	Get(ctx context.Context, id chat.ConversationID) (chat.Conversation, error)
	AddParticipants(ctx context.Context, id chat.ConversationID, participants []chat.ProfileID) (chat.Conversation, error)
	RemoveParticipants(ctx context.Context, id chat.ConversationID, participants []chat.ProfileID) (chat.Conversation, error)
	UserConversations(ctx context.Context, profileID chat.ProfileID) ([]chat.ConversationID, error)
}

type ConversationRepository struct {
	db        *badger.DB
	log       *slog.Logger
	sequences *Sequences
}

func NewConversationRepository(db *badger.DB, log *slog.Logger, sequences *Sequences) ConversationRepository {
	return ConversationRepository{db: db, log: log, sequences: sequences}
}

// Create starts a conversation and attaches its participants in the same transaction
func (r ConversationRepository) Create(ctx context.Context, profiles []chat.ProfileID) (chat.Conversation, error) {
	id, err := r.sequences.NextConversationID()
	if err != nil {
		return chat.Conversation{}, err
	}
	now := time.Now().UTC()
	conversation := chat.NewConversation(id, now)
	err = update(ctx, r.db, func(txn *badger.Txn) error {
		if _, err := attach(txn, id, profiles, now); err != nil {
			return err
		}
		conversation.Participants = chat.SortProfiles(profiles)
		conversation.SettlePrivacy(len(conversation.Participants))
		return putConversation(txn, conversation)
	})
	if err != nil {
		return chat.Conversation{}, err
	}
	r.log.Debug("Conversation created", "conversation_id", id, "participants", len(conversation.Participants))
	return conversation, nil
}

func (r ConversationRepository) Get(ctx context.Context, id chat.ConversationID) (chat.Conversation, error) {
	var conversation chat.Conversation
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		conversation, err = getConversation(txn, id)
		return err
	})
	return conversation, err
}

// AddParticipants attaches the profiles which are not members yet.
// The conversation loses its private flag as soon as it holds more than two participants.
func (r ConversationRepository) AddParticipants(ctx context.Context, id chat.ConversationID, profiles []chat.ProfileID) (chat.Conversation, error) {
	var conversation chat.Conversation
	now := time.Now().UTC()
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		if conversation, err = getConversation(txn, id); err != nil {
			return err
		}
		added, err := attach(txn, id, profiles, now)
		if err != nil {
			return err
		}
		conversation.Participants = chat.SortProfiles(append(conversation.Participants, added...))
		changed := conversation.SettlePrivacy(len(conversation.Participants))
		if !changed && len(added) == 0 {
			return nil
		}
		conversation.UpdatedAt = now
		return putConversation(txn, conversation)
	})
	if err != nil {
		return chat.Conversation{}, err
	}
	return conversation, nil
}

// RemoveParticipants detaches the profiles.
// The private flag is left untouched and the deliveries already received are kept.
func (r ConversationRepository) RemoveParticipants(ctx context.Context, id chat.ConversationID, profiles []chat.ProfileID) (chat.Conversation, error) {
	var conversation chat.Conversation
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		var err error
		if conversation, err = getConversation(txn, id); err != nil {
			return err
		}
		removed := 0
		for _, profileID := range chat.SortProfiles(profiles) {
			if !conversation.HasParticipant(profileID) {
				continue
			}
			if err = txn.Delete(memberKey(id, profileID)); err != nil {
				return err
			}
			if err = txn.Delete(profileConversationKey(profileID, id)); err != nil {
				return err
			}
			removed++
		}
		if removed == 0 {
			return nil
		}
		conversation.UpdatedAt = time.Now().UTC()
		if err = putConversation(txn, conversation); err != nil {
			return err
		}
		conversation.Participants, err = participants(txn, id)
		return err
	})
	if err != nil {
		return chat.Conversation{}, err
	}
	return conversation, nil
}

// UserConversations lists the private conversations of a profile, ascending
func (r ConversationRepository) UserConversations(ctx context.Context, profileID chat.ProfileID) ([]chat.ConversationID, error) {
	var result []chat.ConversationID
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		ids, err := keyIDs(txn, conversationsOf(profileID))
		if err != nil {
			return err
		}
		for _, id := range ids {
			raw, err := getValue(txn, conversationKey(chat.ConversationID(id)), nil)
			if err != nil {
				return err
			}
			if raw == nil {
				continue
			}
			conversation, err := decodeConversation(raw)
			if err != nil {
				return err
			}
			if conversation.IsPrivate {
				result = append(result, conversation.ID)
			}
		}
		return nil
	})
	return result, err
}

// attach writes the membership of every profile not already attached and returns them.
// Attaching twice the same profile is a no-op.
func attach(txn *badger.Txn, id chat.ConversationID, profiles []chat.ProfileID, at time.Time) ([]chat.ProfileID, error) {
	var added []chat.ProfileID
	for _, profileID := range chat.SortProfiles(profiles) {
		found, err := exists(txn, memberKey(id, profileID))
		if err != nil {
			return nil, err
		}
		if found {
			continue
		}
		raw, err := encodeMembership(chat.Membership{ConversationID: id, ProfileID: profileID, CreatedAt: at, UpdatedAt: at})
		if err != nil {
			return nil, err
		}
		if err = txn.Set(memberKey(id, profileID), raw); err != nil {
			return nil, err
		}
		if err = txn.Set(profileConversationKey(profileID, id), []byte{}); err != nil {
			return nil, err
		}
		added = append(added, profileID)
	}
	return added, nil
}
