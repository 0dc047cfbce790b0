package repositories

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// InspectRow is the human readable rendition of one stored key
type InspectRow struct {
	Key    string
	Kind   string
	Detail string
}

// Inspect walks every key starting with prefix, an empty prefix walks the whole store
func Inspect(ctx context.Context, db *badger.DB, prefix string) ([]InspectRow, error) {
	var rows []InspectRow
	err := view(ctx, db, func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(prefix), PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			err := item.Value(func(val []byte) error {
				rows = append(rows, describe(key, val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return rows, err
}

func describe(key string, val []byte) InspectRow {
	row := InspectRow{Key: key, Kind: strings.TrimSuffix(key[:strings.IndexByte(key, ':')+1], ":")}
	var detail string
	var err error
	switch {
	case strings.HasPrefix(key, conversationPrefix):
		c, decodeErr := decodeConversation(val)
		err = decodeErr
		detail = fmt.Sprintf("private=%t updated=%s", c.IsPrivate, c.UpdatedAt.Format("2006-01-02 15:04:05"))
	case strings.HasPrefix(key, messageLocatorPrefix):
		id, decodeErr := decodeID(val)
		err = decodeErr
		detail = fmt.Sprintf("conversation=%d", id)
	case strings.HasPrefix(key, messagePrefix):
		m, decodeErr := decodeMessage(val)
		err = decodeErr
		detail = fmt.Sprintf("sender=%d type=%s body=%q", m.SenderID, m.Type, m.Body)
	case strings.HasPrefix(key, attachmentPrefix):
		a, decodeErr := decodeAttachment(val)
		err = decodeErr
		detail = fmt.Sprintf("%s %s", a.MimeType, a.Href)
	case strings.HasPrefix(key, deliveryLocatorPrefix):
	case strings.HasPrefix(key, deliveryPrefix):
		d, decodeErr := decodeDelivery(val)
		err = decodeErr
		detail = fmt.Sprintf("sender=%t seen=%t deleted=%t", d.IsSender, d.IsSeen, d.IsDeleted())
	case strings.HasPrefix(key, "seq:") && len(val) == 8:
		detail = fmt.Sprintf("leased up to %d", binary.BigEndian.Uint64(val))
	case len(val) == 0:
	default:
		detail = fmt.Sprintf("%d bytes", len(val))
	}
	if err != nil {
		detail = fmt.Sprintf("undecodable: %v", err)
	}
	row.Detail = detail
	return row
}
