package repositories

import (
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type testStore struct {
	conversations ConversationRepository
	messages      MessageRepository
	deliveries    DeliveryRepository
	db            *badger.DB
}

func newTestStore(t *testing.T) testStore {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	sequences, err := NewSequences(db, 10)
	req.NoError(err)
	t.Cleanup(func() {
		_ = sequences.Release()
		_ = db.Close()
	})

	return testStore{
		conversations: NewConversationRepository(db, log, sequences),
		messages:      NewMessageRepository(db, log, sequences),
		deliveries:    NewDeliveryRepository(db, log),
		db:            db,
	}
}
