package services

import (
	"chat-fanout/domain/chat"
	"chat-fanout/repositories"
	"chat-fanout/runtime"
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/samber/lo"
)

// IChatService exposes the participant scoped use cases of the chat
type IChatService interface {
	CreateConversation(ctx context.Context, participants []chat.ProfileID) (chat.Conversation, error)
	Conversation(ctx context.Context, id chat.ConversationID) (chat.Conversation, error)
	AddParticipants(ctx context.Context, id chat.ConversationID, profiles []chat.ProfileID) (chat.Conversation, error)
	RemoveParticipants(ctx context.Context, id chat.ConversationID, profiles []chat.ProfileID) (chat.Conversation, error)
	Send(ctx context.Context, cmd chat.PostMessageCommand) (chat.Message, error)
	Conversations(ctx context.Context, profileID chat.ProfileID) ([]chat.ConversationSummary, error)
	Messages(ctx context.Context, query chat.GetMessagesCommand) (chat.Page[chat.FeedItem], error)
	Trash(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) error
	MessageRead(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) error
	Clear(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error)
	ConversationRead(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error)
	UserConversations(ctx context.Context, profileID chat.ProfileID) ([]chat.ConversationID, error)
	ConversationBetweenUsers(ctx context.Context, first, second chat.ProfileID) (*chat.Conversation, error)
}

type ChatService struct {
	log           *slog.Logger
	conversations repositories.IConversationRepository
	messages      repositories.IMessageRepository
	deliveries    repositories.IDeliveryRepository
	engine        runtime.IEngine
}

func NewChatService(log *slog.Logger,
	conversations repositories.IConversationRepository,
	messages repositories.IMessageRepository,
	deliveries repositories.IDeliveryRepository,
	engine runtime.IEngine) *ChatService {
	return &ChatService{
		log:           log,
		conversations: conversations,
		messages:      messages,
		deliveries:    deliveries,
		engine:        engine,
	}
}

func (s *ChatService) CreateConversation(ctx context.Context, participants []chat.ProfileID) (chat.Conversation, error) {
	if err := chat.ValidateProfiles(participants); err != nil {
		return chat.Conversation{}, err
	}
	return s.conversations.Create(ctx, participants)
}

func (s *ChatService) Conversation(ctx context.Context, id chat.ConversationID) (chat.Conversation, error) {
	return s.conversations.Get(ctx, id)
}

func (s *ChatService) AddParticipants(ctx context.Context, id chat.ConversationID, profiles []chat.ProfileID) (chat.Conversation, error) {
	if err := chat.ValidateProfiles(profiles); err != nil {
		return chat.Conversation{}, err
	}
	return s.conversations.AddParticipants(ctx, id, profiles)
}

func (s *ChatService) RemoveParticipants(ctx context.Context, id chat.ConversationID, profiles []chat.ProfileID) (chat.Conversation, error) {
	return s.conversations.RemoveParticipants(ctx, id, profiles)
}

// Send resolves the conversation then hands the message over to the fan-out engine
func (s *ChatService) Send(ctx context.Context, cmd chat.PostMessageCommand) (chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return chat.Message{}, err
	}
	conversation, err := s.conversations.Get(ctx, cmd.ConversationID)
	if err != nil {
		return chat.Message{}, err
	}
	return s.engine.Send(ctx, chat.NewSendMessageCommand(conversation, cmd))
}

// Conversations lists, most recent first, the conversations of a profile holding at least one message,
// with their last message, the profile's delivery of it and its unread count.
func (s *ChatService) Conversations(ctx context.Context, profileID chat.ProfileID) ([]chat.ConversationSummary, error) {
	summaries, err := s.messages.Summaries(ctx, profileID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(summaries, func(a, b chat.ConversationSummary) int {
		return cmp.Compare(b.LastMessage.ID, a.LastMessage.ID)
	})
	return summaries, nil
}

func (s *ChatService) Messages(ctx context.Context, query chat.GetMessagesCommand) (chat.Page[chat.FeedItem], error) {
	if _, err := s.conversations.Get(ctx, query.ConversationID); err != nil {
		return chat.Page[chat.FeedItem]{}, err
	}
	return s.messages.Feed(ctx, query.WithDefaults())
}

func (s *ChatService) Trash(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) error {
	return s.deliveries.Trash(ctx, messageID, profileID)
}

func (s *ChatService) MessageRead(ctx context.Context, messageID chat.MessageID, profileID chat.ProfileID) error {
	return s.deliveries.MarkRead(ctx, messageID, profileID)
}

func (s *ChatService) Clear(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error) {
	return s.deliveries.Clear(ctx, conversationID, profileID)
}

func (s *ChatService) ConversationRead(ctx context.Context, conversationID chat.ConversationID, profileID chat.ProfileID) (int, error) {
	return s.deliveries.MarkConversationRead(ctx, conversationID, profileID)
}

func (s *ChatService) UserConversations(ctx context.Context, profileID chat.ProfileID) ([]chat.ConversationID, error) {
	return s.conversations.UserConversations(ctx, profileID)
}

// ConversationBetweenUsers returns the earliest created private conversation shared by two profiles,
// nil when they share none.
func (s *ChatService) ConversationBetweenUsers(ctx context.Context, first, second chat.ProfileID) (*chat.Conversation, error) {
	firstIDs, err := s.conversations.UserConversations(ctx, first)
	if err != nil {
		return nil, err
	}
	secondIDs, err := s.conversations.UserConversations(ctx, second)
	if err != nil {
		return nil, err
	}
	shared := lo.Intersect(firstIDs, secondIDs)
	if len(shared) == 0 {
		return nil, nil
	}
	conversation, err := s.conversations.Get(ctx, lo.Min(shared))
	if err != nil {
		return nil, err
	}
	s.log.Debug("Shared conversation found", "first", first, "second", second, "conversation_id", conversation.ID, "candidates", len(shared))
	return &conversation, nil
}
