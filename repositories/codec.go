package repositories

import (
	"chat-fanout/domain/chat"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Values are stored in the protobuf wire format.
// Zero values are omitted and unknown fields are skipped when reading,
// so fields can be appended without migrating existing records.

type recordWriter struct {
	buf []byte
	err error
}

func (w *recordWriter) uint(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, v)
}

func (w *recordWriter) bool(num protowire.Number, v bool) {
	if v {
		w.uint(num, 1)
	}
}

func (w *recordWriter) string(num protowire.Number, v string) {
	if v == "" {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.BytesType)
	w.buf = protowire.AppendString(w.buf, v)
}

func (w *recordWriter) time(num protowire.Number, t time.Time) {
	if t.IsZero() || w.err != nil {
		return
	}
	raw, err := proto.Marshal(timestamppb.New(t))
	if err != nil {
		w.err = err
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, raw)
}

func (w *recordWriter) bytes() ([]byte, error) {
	return w.buf, w.err
}

// fieldReader consumes the value of one field and returns how many bytes it used
type fieldReader func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func readRecord(b []byte, read fieldReader) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m, err := read(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

func readUint(typ protowire.Type, b []byte, v *uint64) int {
	if typ != protowire.VarintType {
		return protowire.ConsumeFieldValue(0, typ, b)
	}
	value, n := protowire.ConsumeVarint(b)
	*v = value
	return n
}

func readBool(typ protowire.Type, b []byte, v *bool) int {
	var raw uint64
	n := readUint(typ, b, &raw)
	*v = raw != 0
	return n
}

func readString(typ protowire.Type, b []byte, v *string) int {
	if typ != protowire.BytesType {
		return protowire.ConsumeFieldValue(0, typ, b)
	}
	value, n := protowire.ConsumeString(b)
	*v = value
	return n
}

func readTime(typ protowire.Type, b []byte, v *time.Time) (int, error) {
	if typ != protowire.BytesType {
		return protowire.ConsumeFieldValue(0, typ, b), nil
	}
	raw, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	var ts timestamppb.Timestamp
	if err := proto.Unmarshal(raw, &ts); err != nil {
		return 0, err
	}
	*v = ts.AsTime()
	return n, nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return protowire.ConsumeFieldValue(num, typ, b), nil
}

func encodeConversation(c chat.Conversation) ([]byte, error) {
	w := &recordWriter{}
	w.uint(1, uint64(c.ID))
	w.bool(2, c.IsPrivate)
	w.time(3, c.CreatedAt)
	w.time(4, c.UpdatedAt)
	return w.bytes()
}

func decodeConversation(b []byte) (chat.Conversation, error) {
	var c chat.Conversation
	var id uint64
	err := readRecord(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readUint(typ, b, &id), nil
		case 2:
			return readBool(typ, b, &c.IsPrivate), nil
		case 3:
			return readTime(typ, b, &c.CreatedAt)
		case 4:
			return readTime(typ, b, &c.UpdatedAt)
		default:
			return skipField(num, typ, b)
		}
	})
	c.ID = chat.ConversationID(id)
	return c, err
}

func encodeMembership(m chat.Membership) ([]byte, error) {
	w := &recordWriter{}
	w.uint(1, uint64(m.ConversationID))
	w.uint(2, uint64(m.ProfileID))
	w.time(3, m.CreatedAt)
	w.time(4, m.UpdatedAt)
	return w.bytes()
}

func encodeMessage(m chat.Message) ([]byte, error) {
	w := &recordWriter{}
	w.uint(1, uint64(m.ID))
	w.uint(2, uint64(m.ConversationID))
	w.uint(3, uint64(m.SenderID))
	w.string(4, m.Body)
	w.string(5, string(m.Type))
	w.time(6, m.CreatedAt)
	w.time(7, m.UpdatedAt)
	return w.bytes()
}

func decodeMessage(b []byte) (chat.Message, error) {
	var m chat.Message
	var id, conversationID, senderID uint64
	var messageType string
	err := readRecord(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readUint(typ, b, &id), nil
		case 2:
			return readUint(typ, b, &conversationID), nil
		case 3:
			return readUint(typ, b, &senderID), nil
		case 4:
			return readString(typ, b, &m.Body), nil
		case 5:
			return readString(typ, b, &messageType), nil
		case 6:
			return readTime(typ, b, &m.CreatedAt)
		case 7:
			return readTime(typ, b, &m.UpdatedAt)
		default:
			return skipField(num, typ, b)
		}
	})
	m.ID = chat.MessageID(id)
	m.ConversationID = chat.ConversationID(conversationID)
	m.SenderID = chat.ProfileID(senderID)
	m.Type = chat.MessageType(messageType)
	return m, err
}

func encodeAttachment(a chat.Attachment) ([]byte, error) {
	w := &recordWriter{}
	w.uint(1, uint64(a.ID))
	w.string(2, a.EntityType)
	w.uint(3, uint64(a.EntityID))
	w.string(4, a.Href)
	w.string(5, a.Extension)
	w.string(6, a.Type)
	w.string(7, a.MimeType)
	w.time(8, a.CreatedAt)
	return w.bytes()
}

func decodeAttachment(b []byte) (chat.Attachment, error) {
	var a chat.Attachment
	var id, entityID uint64
	err := readRecord(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readUint(typ, b, &id), nil
		case 2:
			return readString(typ, b, &a.EntityType), nil
		case 3:
			return readUint(typ, b, &entityID), nil
		case 4:
			return readString(typ, b, &a.Href), nil
		case 5:
			return readString(typ, b, &a.Extension), nil
		case 6:
			return readString(typ, b, &a.Type), nil
		case 7:
			return readString(typ, b, &a.MimeType), nil
		case 8:
			return readTime(typ, b, &a.CreatedAt)
		default:
			return skipField(num, typ, b)
		}
	})
	a.ID = chat.AttachmentID(id)
	a.EntityID = chat.MessageID(entityID)
	return a, err
}

func encodeDelivery(d chat.Delivery) ([]byte, error) {
	w := &recordWriter{}
	w.uint(1, uint64(d.MessageID))
	w.uint(2, uint64(d.ProfileID))
	w.uint(3, uint64(d.ConversationID))
	w.bool(4, d.IsSeen)
	w.bool(5, d.IsSender)
	if d.DeletedAt != nil {
		w.time(6, *d.DeletedAt)
	}
	w.time(7, d.CreatedAt)
	w.time(8, d.UpdatedAt)
	return w.bytes()
}

func decodeDelivery(b []byte) (chat.Delivery, error) {
	var d chat.Delivery
	var messageID, profileID, conversationID uint64
	var deletedAt time.Time
	err := readRecord(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readUint(typ, b, &messageID), nil
		case 2:
			return readUint(typ, b, &profileID), nil
		case 3:
			return readUint(typ, b, &conversationID), nil
		case 4:
			return readBool(typ, b, &d.IsSeen), nil
		case 5:
			return readBool(typ, b, &d.IsSender), nil
		case 6:
			return readTime(typ, b, &deletedAt)
		case 7:
			return readTime(typ, b, &d.CreatedAt)
		case 8:
			return readTime(typ, b, &d.UpdatedAt)
		default:
			return skipField(num, typ, b)
		}
	})
	d.MessageID = chat.MessageID(messageID)
	d.ProfileID = chat.ProfileID(profileID)
	d.ConversationID = chat.ConversationID(conversationID)
	if !deletedAt.IsZero() {
		d.DeletedAt = &deletedAt
	}
	return d, err
}

// encodeID stores a bare id, used by the locator keys
func encodeID(id uint64) []byte {
	return protowire.AppendVarint(nil, id)
}

func decodeID(b []byte) (uint64, error) {
	id, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return id, nil
}
