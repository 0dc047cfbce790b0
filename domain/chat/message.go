package chat

import (
	"io"
	"time"
)

type MessageID uint64

type AttachmentID uint64

type MessageType string

const (
	TextMessage  MessageType = "text"
	FileMessage  MessageType = "file"
	ImageMessage MessageType = "image"
)

// AttachmentEntityMessage is the owner kind recorded on attachments linked to a message
const AttachmentEntityMessage = "message"

// AttachmentFileType is the only attachment type produced by the attachment store
const AttachmentFileType = "file"

type Message struct {
	ID             MessageID
	ConversationID ConversationID
	SenderID       ProfileID
	Body           string
	Type           MessageType
	Attachments    []Attachment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Attachment struct {
	ID         AttachmentID
	EntityType string
	EntityID   MessageID
	Href       string
	Extension  string
	Type       string
	MimeType   string
	CreatedAt  time.Time
}

// Upload is a file handed over by the caller when sending a message
type Upload struct {
	Name    string
	Content io.Reader
}

// StoredFile is the reference returned once an upload has been persisted
type StoredFile struct {
	Href      string
	Extension string
	Type      string
	MimeType  string
}

// MessageDraft holds everything needed to persist a message and fan it out
type MessageDraft struct {
	ConversationID ConversationID
	SenderID       ProfileID
	Body           string
	Type           MessageType
	Files          []StoredFile
	At             time.Time
}

// SentMessage is the outcome of a send: the message and one delivery per recipient
type SentMessage struct {
	Message    Message
	Deliveries []Delivery
}
