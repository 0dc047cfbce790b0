package repositories

import (
	"chat-fanout/domain/chat"
	"fmt"
	"strconv"
)

// Every id is zero padded on 20 digits, the width of a uint64,
// so that the lexical order of the keys is the numeric order of the ids.
const idWidth = 20

const (
	conversationPrefix        = "conv:"
	memberPrefix              = "member:"
	profileConversationPrefix = "pconv:"
	messagePrefix             = "msg:"
	messageLocatorPrefix      = "msgloc:"
	attachmentPrefix          = "att:"
	deliveryPrefix            = "dlv:"
	deliveryLocatorPrefix     = "dlvloc:"

	conversationSequence = "seq:conversation"
	messageSequence      = "seq:message"
	attachmentSequence   = "seq:attachment"
)

func conversationKey(id chat.ConversationID) []byte {
	return fmt.Appendf(nil, "%s%020d", conversationPrefix, id)
}

// memberKey "member:{conversation}:{profile}"
func memberKey(conversationID chat.ConversationID, profileID chat.ProfileID) []byte {
	return fmt.Appendf(nil, "%s%020d:%020d", memberPrefix, conversationID, profileID)
}

func membersOf(conversationID chat.ConversationID) []byte {
	return fmt.Appendf(nil, "%s%020d:", memberPrefix, conversationID)
}

// profileConversationKey "pconv:{profile}:{conversation}" reverse index of the membership
func profileConversationKey(profileID chat.ProfileID, conversationID chat.ConversationID) []byte {
	return fmt.Appendf(nil, "%s%020d:%020d", profileConversationPrefix, profileID, conversationID)
}

func conversationsOf(profileID chat.ProfileID) []byte {
	return fmt.Appendf(nil, "%s%020d:", profileConversationPrefix, profileID)
}

// messageKey "msg:{conversation}:{message}"
func messageKey(conversationID chat.ConversationID, messageID chat.MessageID) []byte {
	return fmt.Appendf(nil, "%s%020d:%020d", messagePrefix, conversationID, messageID)
}

func messagesOf(conversationID chat.ConversationID) []byte {
	return fmt.Appendf(nil, "%s%020d:", messagePrefix, conversationID)
}

// messageLocatorKey "msgloc:{message}" holds the conversation of a message
func messageLocatorKey(messageID chat.MessageID) []byte {
	return fmt.Appendf(nil, "%s%020d", messageLocatorPrefix, messageID)
}

// attachmentKey "att:{message}:{attachment}"
func attachmentKey(messageID chat.MessageID, attachmentID chat.AttachmentID) []byte {
	return fmt.Appendf(nil, "%s%020d:%020d", attachmentPrefix, messageID, attachmentID)
}

func attachmentsOf(messageID chat.MessageID) []byte {
	return fmt.Appendf(nil, "%s%020d:", attachmentPrefix, messageID)
}

// deliveryKey "dlv:{profile}:{conversation}:{message}"
// A profile only ever touches its own range of keys.
func deliveryKey(profileID chat.ProfileID, conversationID chat.ConversationID, messageID chat.MessageID) []byte {
	return fmt.Appendf(nil, "%s%020d:%020d:%020d", deliveryPrefix, profileID, conversationID, messageID)
}

func deliveriesOf(profileID chat.ProfileID, conversationID chat.ConversationID) []byte {
	return fmt.Appendf(nil, "%s%020d:%020d:", deliveryPrefix, profileID, conversationID)
}

// deliveryLocatorKey "dlvloc:{message}:{profile}" lists the recipients of a message
func deliveryLocatorKey(messageID chat.MessageID, profileID chat.ProfileID) []byte {
	return fmt.Appendf(nil, "%s%020d:%020d", deliveryLocatorPrefix, messageID, profileID)
}

func recipientsOf(messageID chat.MessageID) []byte {
	return fmt.Appendf(nil, "%s%020d:", deliveryLocatorPrefix, messageID)
}

// trailingID parses the last id of a key
func trailingID(key []byte) (uint64, error) {
	if len(key) < idWidth {
		return 0, fmt.Errorf("key %q is too short", key)
	}
	return strconv.ParseUint(string(key[len(key)-idWidth:]), 10, 64)
}

// seekLast positions a reverse iterator on the last key of a prefix
func seekLast(prefix []byte) []byte {
	return append(append([]byte{}, prefix...), 0xFF)
}
