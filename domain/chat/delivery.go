package chat

import "time"

// Delivery is the per-recipient state of a message.
// Identified by (MessageID, ProfileID).
type Delivery struct {
	MessageID      MessageID
	ProfileID      ProfileID
	ConversationID ConversationID
	IsSeen         bool
	IsSender       bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewDelivery derives the delivery of a message for one recipient.
// The sender has already seen its own message.
func NewDelivery(message Message, recipient ProfileID) Delivery {
	isSender := recipient == message.SenderID
	return Delivery{
		MessageID:      message.ID,
		ProfileID:      recipient,
		ConversationID: message.ConversationID,
		IsSeen:         isSender,
		IsSender:       isSender,
		CreatedAt:      message.CreatedAt,
		UpdatedAt:      message.CreatedAt,
	}
}

func (d Delivery) IsDeleted() bool {
	return d.DeletedAt != nil
}

// Trash soft deletes the delivery, returns false if it was already deleted
func (d *Delivery) Trash(at time.Time) bool {
	if d.IsDeleted() {
		return false
	}
	d.DeletedAt = &at
	d.UpdatedAt = at
	return true
}

// MarkSeen returns false if the delivery was already seen or has been trashed.
// A trashed delivery keeps the seen flag it had when it was deleted.
func (d *Delivery) MarkSeen(at time.Time) bool {
	if d.IsSeen || d.IsDeleted() {
		return false
	}
	d.IsSeen = true
	d.UpdatedAt = at
	return true
}

// FeedItem is a message as seen by one participant
type FeedItem struct {
	Message Message
	IsSeen  bool
}

type ConversationSummary struct {
	ConversationID ConversationID
	LastMessage    Message
	// Delivery is nil when the reader has no live delivery for the last message
	Delivery    *Delivery
	UnreadCount int
}
