package repositories

import (
	"chat-fanout/domain/chat"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestDecodeDelivery_Skips_Unknown_Fields(t *testing.T) {
	req := require.New(t)
	deletedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	raw, err := encodeDelivery(chat.Delivery{MessageID: 4, ProfileID: 8, ConversationID: 2, IsSeen: true, DeletedAt: &deletedAt})
	req.NoError(err)

	// Given a record written by a newer version carrying extra fields
	raw = protowire.AppendTag(raw, 42, protowire.BytesType)
	raw = protowire.AppendString(raw, "from the future")
	raw = protowire.AppendTag(raw, 43, protowire.VarintType)
	raw = protowire.AppendVarint(raw, 7)

	delivery, err := decodeDelivery(raw)
	req.NoError(err)
	req.Equal(chat.MessageID(4), delivery.MessageID)
	req.True(delivery.IsSeen)
	req.False(delivery.IsSender)
	req.NotNil(delivery.DeletedAt)
	req.True(deletedAt.Equal(*delivery.DeletedAt))
}

func TestDecodeMessage_Truncated_Record(t *testing.T) {
	req := require.New(t)
	raw, err := encodeMessage(chat.Message{ID: 1, Body: "a rather long body"})
	req.NoError(err)

	_, err = decodeMessage(raw[:len(raw)-3])
	req.Error(err)
}

func TestTrailingID(t *testing.T) {
	req := require.New(t)
	id, err := trailingID(deliveryKey(3, 2, 18446744073709551615))
	req.NoError(err)
	req.Equal(uint64(18446744073709551615), id)

	_, err = trailingID([]byte("short"))
	req.Error(err)
}
