package repositories

import (
	"chat-fanout/domain/chat"
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestInspect_Describes_Every_Key_Of_A_Prefix(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	conversation, err := store.conversations.Create(ctx, []chat.ProfileID{1, 2})
	req.NoError(err)
	sent, err := store.messages.Send(ctx, draft(conversation.ID, 1, "hello"))
	req.NoError(err)

	rows, err := Inspect(ctx, store.db, deliveryPrefix)
	req.NoError(err)
	req.Len(rows, 2)
	req.Equal(string(deliveryKey(1, conversation.ID, sent.Message.ID)), rows[0].Key)
	req.Equal("dlv", rows[0].Kind)
	req.Equal("sender=true seen=true deleted=false", rows[0].Detail)
	req.Equal("sender=false seen=false deleted=false", rows[1].Detail)

	rows, err = Inspect(ctx, store.db, messagePrefix)
	req.NoError(err)
	req.Len(rows, 1)
	req.Equal(`sender=1 type=text body="hello"`, rows[0].Detail)

	all, err := Inspect(ctx, store.db, "")
	req.NoError(err)
	kinds := lo.Uniq(lo.Map(all, func(row InspectRow, _ int) string { return row.Kind }))
	req.Subset(kinds, []string{"conv", "member", "pconv", "msg", "msgloc", "dlv", "dlvloc"})
}
