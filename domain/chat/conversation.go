package chat

import (
	"slices"
	"time"
)

type ProfileID uint64

type ConversationID uint64

// privateLimit is the highest participant count a private conversation can hold
const privateLimit = 2

type Conversation struct {
	ID           ConversationID
	IsPrivate    bool
	Participants []ProfileID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Membership links a profile to a conversation, the pair is unique
type Membership struct {
	ConversationID ConversationID
	ProfileID      ProfileID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewConversation starts every conversation as private.
// The flag is settled once participants are attached.
func NewConversation(id ConversationID, at time.Time) Conversation {
	return Conversation{ID: id, IsPrivate: true, CreatedAt: at, UpdatedAt: at}
}

// SettlePrivacy applies the privacy rule for the given participant count.
// A conversation that went public never becomes private again.
// Returns true when the flag changed.
func (c *Conversation) SettlePrivacy(participants int) bool {
	if c.IsPrivate && participants > privateLimit {
		c.IsPrivate = false
		return true
	}
	return false
}

func (c Conversation) HasParticipant(id ProfileID) bool {
	_, found := slices.BinarySearch(c.Participants, id)
	return found
}

// SortProfiles sorts ascending and drops duplicates, keeping input untouched
func SortProfiles(ids []ProfileID) []ProfileID {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
