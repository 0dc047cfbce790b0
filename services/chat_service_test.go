package services

import (
	"chat-fanout/domain/chat"
	"chat-fanout/errors"
	"chat-fanout/mocks"
	"context"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceFixture struct {
	service       *ChatService
	conversations *mocks.MockIConversationRepository
	messages      *mocks.MockIMessageRepository
	deliveries    *mocks.MockIDeliveryRepository
	engine        *mocks.MockIEngine
}

func newServiceFixture(t *testing.T) serviceFixture {
	ctrl := gomock.NewController(t)
	f := serviceFixture{
		conversations: mocks.NewMockIConversationRepository(ctrl),
		messages:      mocks.NewMockIMessageRepository(ctrl),
		deliveries:    mocks.NewMockIDeliveryRepository(ctrl),
		engine:        mocks.NewMockIEngine(ctrl),
	}
	f.service = NewChatService(logs.GetLoggerFromLevel(slog.LevelDebug), f.conversations, f.messages, f.deliveries, f.engine)
	return f
}

func TestChatService_Send_Resolves_Conversation(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)
	ctx := context.Background()
	conversation := chat.Conversation{ID: 4, IsPrivate: true, Participants: []chat.ProfileID{1, 2}}

	f.conversations.EXPECT().Get(ctx, chat.ConversationID(4)).Return(conversation, nil)
	f.engine.EXPECT().Send(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
			req.Equal(conversation, cmd.Conversation)
			req.Equal("hi", cmd.Body)
			req.Equal(chat.ProfileID(1), cmd.SenderID)
			return chat.Message{ID: 10, ConversationID: 4, SenderID: 1, Body: "hi"}, nil
		})

	message, err := f.service.Send(ctx, chat.PostMessageCommand{ConversationID: 4, SenderID: 1, Body: "hi"})
	req.NoError(err)
	req.Equal(chat.MessageID(10), message.ID)
}

func TestChatService_Send_Unknown_Conversation(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.conversations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(chat.Conversation{}, errors.ErrConversationNotFound)
	f.engine.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service.Send(context.Background(), chat.PostMessageCommand{ConversationID: 4, SenderID: 1, Body: "hi"})
	req.ErrorIs(err, errors.ErrConversationNotFound)

	// An invalid command never reaches the repositories
	_, err = f.service.Send(context.Background(), chat.PostMessageCommand{ConversationID: 4, Body: "hi"})
	req.ErrorIs(err, errors.ErrInvalidCommand)
}

func TestChatService_Conversations_Summaries(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)
	ctx := context.Background()

	// Given two summaries returned out of order
	f.messages.EXPECT().Summaries(ctx, chat.ProfileID(1)).Return([]chat.ConversationSummary{
		{ConversationID: 1, LastMessage: chat.Message{ID: 5, ConversationID: 1}},
		{ConversationID: 3, LastMessage: chat.Message{ID: 9, ConversationID: 3}, Delivery: &chat.Delivery{MessageID: 9, ProfileID: 1}, UnreadCount: 2},
	}, nil)

	summaries, err := f.service.Conversations(ctx, 1)
	req.NoError(err)

	// Then the most recent comes first
	req.Len(summaries, 2)
	req.Equal(chat.ConversationID(3), summaries[0].ConversationID)
	req.NotNil(summaries[0].Delivery)
	req.Equal(2, summaries[0].UnreadCount)
	req.Equal(chat.ConversationID(1), summaries[1].ConversationID)
	req.Nil(summaries[1].Delivery)
}

func TestChatService_Conversations_Error(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.messages.EXPECT().Summaries(gomock.Any(), chat.ProfileID(1)).Return(nil, errors.ErrTransactionFailure)

	_, err := f.service.Conversations(context.Background(), 1)
	req.ErrorIs(err, errors.ErrTransactionFailure)
}

func TestChatService_ConversationBetweenUsers_Picks_Earliest(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)
	ctx := context.Background()

	// Given two shared private conversations
	f.conversations.EXPECT().UserConversations(ctx, chat.ProfileID(1)).Return([]chat.ConversationID{3, 7, 8}, nil)
	f.conversations.EXPECT().UserConversations(ctx, chat.ProfileID(2)).Return([]chat.ConversationID{2, 7, 3}, nil)
	f.conversations.EXPECT().Get(ctx, chat.ConversationID(3)).Return(chat.Conversation{ID: 3, IsPrivate: true}, nil)

	conversation, err := f.service.ConversationBetweenUsers(ctx, 1, 2)
	req.NoError(err)
	req.NotNil(conversation)
	req.Equal(chat.ConversationID(3), conversation.ID)
}

func TestChatService_ConversationBetweenUsers_None(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.conversations.EXPECT().UserConversations(gomock.Any(), chat.ProfileID(1)).Return([]chat.ConversationID{1}, nil)
	f.conversations.EXPECT().UserConversations(gomock.Any(), chat.ProfileID(2)).Return(nil, nil)

	conversation, err := f.service.ConversationBetweenUsers(context.Background(), 1, 2)
	req.NoError(err)
	req.Nil(conversation)
}

func TestChatService_Messages_Applies_Defaults(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.conversations.EXPECT().Get(gomock.Any(), chat.ConversationID(2)).Return(chat.Conversation{ID: 2}, nil)
	f.messages.EXPECT().Feed(gomock.Any(), chat.GetMessagesCommand{
		ConversationID: 2, ProfileID: 1, PerPage: 25, Page: 1, Sorting: chat.Ascending,
	}).Return(chat.Page[chat.FeedItem]{Total: 0, PerPage: 25, CurrentPage: 1, LastPage: 1}, nil)

	page, err := f.service.Messages(context.Background(), chat.GetMessagesCommand{ConversationID: 2, ProfileID: 1})
	req.NoError(err)
	req.Equal(25, page.PerPage)
}

func TestChatService_AddParticipants_Rejects_Zero_Profile(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)
	f.conversations.EXPECT().AddParticipants(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service.AddParticipants(context.Background(), 1, []chat.ProfileID{0})
	req.ErrorIs(err, errors.ErrInvalidCommand)
}
