package storage

import (
	"chat-fanout/domain/chat"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const commentsDir = "comments"

// DiskStore keeps attachments under {root}/comments/{owner}/{uuid}.{ext}
type DiskStore struct {
	root    string
	maxSize int64
	log     *slog.Logger
}

func NewDiskStore(root string, maxSize int64, log *slog.Logger) DiskStore {
	return DiskStore{root: filepath.Clean(root), maxSize: maxSize, log: log}
}

func (d DiskStore) Store(ctx context.Context, upload chat.Upload, ownerID chat.ProfileID) (chat.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return chat.StoredFile{}, err
	}
	if upload.Content == nil {
		return chat.StoredFile{}, fmt.Errorf("upload %q has no content", upload.Name)
	}
	content, err := d.read(upload)
	if err != nil {
		return chat.StoredFile{}, err
	}

	mime := mimetype.Detect(content)
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(upload.Name), "."))
	if extension == "" {
		extension = strings.TrimPrefix(mime.Extension(), ".")
	}
	name := uuid.NewString()
	if extension != "" {
		name = name + "." + extension
	}

	dir := filepath.Join(d.root, commentsDir, strconv.FormatUint(uint64(ownerID), 10))
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return chat.StoredFile{}, err
	}
	path := filepath.Join(dir, name)
	if err = os.WriteFile(path, content, 0o644); err != nil {
		return chat.StoredFile{}, err
	}
	d.log.Debug("Attachment stored", "path", path, "mime", mime.String(), "size", len(content))

	return chat.StoredFile{
		Href:      filepath.ToSlash(path),
		Extension: extension,
		Type:      chat.AttachmentFileType,
		MimeType:  mime.String(),
	}, nil
}

// Remove deletes a stored attachment, a missing file is not an error
func (d DiskStore) Remove(ctx context.Context, href string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Clean(filepath.FromSlash(href))
	rel, err := filepath.Rel(d.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("attachment %q is outside of %s", href, d.root)
	}
	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (d DiskStore) read(upload chat.Upload) ([]byte, error) {
	reader := upload.Content
	if d.maxSize > 0 {
		reader = io.LimitReader(reader, d.maxSize+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if d.maxSize > 0 && int64(len(content)) > d.maxSize {
		return nil, fmt.Errorf("upload %q exceeds %d bytes", upload.Name, d.maxSize)
	}
	return content, nil
}
