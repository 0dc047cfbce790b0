package storage

import (
	"bytes"
	"chat-fanout/domain/chat"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDiskStore_Store(t *testing.T) {
	req := require.New(t)
	root := filepath.Join(t.TempDir(), "uploads")
	store := NewDiskStore(root, 0, logs.GetLoggerFromLevel(slog.LevelDebug))

	// When a file with an extension is uploaded
	stored, err := store.Store(context.Background(), chat.Upload{Name: "Report.TXT", Content: strings.NewReader("quarterly")}, 42)
	req.NoError(err)

	// Then it lands in the owner's directory with the declared extension
	req.Equal("txt", stored.Extension)
	req.Equal(chat.AttachmentFileType, stored.Type)
	req.True(strings.HasPrefix(stored.MimeType, "text/plain"))
	req.Equal(filepath.Join(root, "comments", "42"), filepath.Dir(filepath.FromSlash(stored.Href)))
	content, err := os.ReadFile(filepath.FromSlash(stored.Href))
	req.NoError(err)
	req.Equal("quarterly", string(content))
}

func TestDiskStore_Store_Detects_Extension(t *testing.T) {
	req := require.New(t)
	store := NewDiskStore(t.TempDir(), 0, logs.GetLoggerFromLevel(slog.LevelError))

	stored, err := store.Store(context.Background(), chat.Upload{Name: "capture", Content: bytes.NewReader(pngHeader)}, 1)
	req.NoError(err)
	req.Equal("png", stored.Extension)
	req.Equal("image/png", stored.MimeType)
	req.True(strings.HasSuffix(stored.Href, ".png"))
}

func TestDiskStore_Store_Too_Large(t *testing.T) {
	req := require.New(t)
	store := NewDiskStore(t.TempDir(), 4, logs.GetLoggerFromLevel(slog.LevelError))

	_, err := store.Store(context.Background(), chat.Upload{Name: "big.txt", Content: strings.NewReader("too big")}, 1)
	req.Error(err)

	_, err = store.Store(context.Background(), chat.Upload{Name: "nil.txt"}, 1)
	req.Error(err)
}

func TestDiskStore_Remove(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	store := NewDiskStore(root, 0, logs.GetLoggerFromLevel(slog.LevelError))
	ctx := context.Background()
	stored, err := store.Store(ctx, chat.Upload{Name: "a.txt", Content: strings.NewReader("a")}, 1)
	req.NoError(err)

	req.NoError(store.Remove(ctx, stored.Href))
	_, err = os.Stat(filepath.FromSlash(stored.Href))
	req.True(os.IsNotExist(err))

	// Removing twice is fine
	req.NoError(store.Remove(ctx, stored.Href))

	// Paths outside of the root are refused
	req.Error(store.Remove(ctx, filepath.ToSlash(filepath.Join(root, "..", "elsewhere.txt"))))
}
