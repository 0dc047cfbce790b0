package repositories

import (
	"chat-fanout/domain/chat"
	"chat-fanout/errors"
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

// withRetry replays an operation aborted by a concurrent commit
func withRetry[T any](attempts int, fn func() (T, error)) (T, error) {
	var result T
	var err error
	for range attempts {
		result, err = fn()
		if !stderrors.Is(err, errors.ErrTransactionFailure) {
			return result, err
		}
	}
	return result, err
}

func TestMessageRepository_Concurrent_Sends_And_Membership_Change(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	conversation, err := store.conversations.Create(ctx, []chat.ProfileID{1, 2})
	req.NoError(err)

	senders := 8
	var wg sync.WaitGroup
	sent := make(chan chat.SentMessage, senders)
	failures := make(chan error, senders+1)

	for i := range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := withRetry(20, func() (chat.SentMessage, error) {
				return store.messages.Send(ctx, draft(conversation.ID, chat.ProfileID(i%2+1), fmt.Sprintf("message %d", i)))
			})
			if err != nil {
				failures <- err
				return
			}
			sent <- result
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := withRetry(20, func() (chat.Conversation, error) {
			return store.conversations.AddParticipants(ctx, conversation.ID, []chat.ProfileID{3})
		})
		if err != nil {
			failures <- err
		}
	}()
	wg.Wait()
	close(sent)
	close(failures)

	for err := range failures {
		req.NoError(err)
	}

	// Then every message was fanned out either before or after the join, never partially
	ids := make([]chat.MessageID, 0, senders)
	for result := range sent {
		ids = append(ids, result.Message.ID)
		deliveries, err := store.deliveries.ForMessage(ctx, result.Message.ID)
		req.NoError(err)
		recipients := lo.Map(deliveries, func(d chat.Delivery, _ int) chat.ProfileID { return d.ProfileID })
		req.Contains([][]chat.ProfileID{{1, 2}, {1, 2, 3}}, recipients)
		req.Len(lo.Filter(deliveries, func(d chat.Delivery, _ int) bool { return d.IsSender }), 1)
	}
	req.Len(ids, senders)
	req.Len(lo.Uniq(ids), senders)
}
