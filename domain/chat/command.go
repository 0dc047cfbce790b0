package chat

import (
	"chat-fanout/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PostMessageCommand is the request of a participant willing to post into a conversation
type PostMessageCommand struct {
	ConversationID ConversationID `validate:"required"`
	SenderID       ProfileID      `validate:"required"`
	Body           string         `validate:"required_without=Attachments"`
	Type           MessageType    `validate:"omitempty,oneof=text file image"`
	Attachments    []Upload
}

func (c PostMessageCommand) Validate() error {
	return check(c)
}

// SendMessageCommand carries a resolved conversation to the fan-out engine
type SendMessageCommand struct {
	Conversation Conversation
	SenderID     ProfileID   `validate:"required"`
	Body         string      `validate:"required_without=Attachments"`
	Type         MessageType `validate:"omitempty,oneof=text file image"`
	Attachments  []Upload
}

func NewSendMessageCommand(conversation Conversation, post PostMessageCommand) SendMessageCommand {
	return SendMessageCommand{
		Conversation: conversation,
		SenderID:     post.SenderID,
		Body:         post.Body,
		Type:         post.Type,
		Attachments:  post.Attachments,
	}
}

func (c SendMessageCommand) Validate() error {
	if c.Conversation.ID == 0 {
		return fmt.Errorf("%w: conversation is missing", errors.ErrInvalidCommand)
	}
	return check(c)
}

// MessageType falls back to text
func (c SendMessageCommand) MessageType() MessageType {
	if c.Type == "" {
		return TextMessage
	}
	return c.Type
}

type GetMessagesCommand struct {
	ConversationID ConversationID `validate:"required"`
	ProfileID      ProfileID      `validate:"required"`
	PerPage        int            `validate:"min=1,max=500"`
	Page           int            `validate:"min=1"`
	Sorting        Sorting        `validate:"oneof=asc desc"`
}

// WithDefaults fills the paging fields left empty: 25 per page, first page, ascending
func (c GetMessagesCommand) WithDefaults() GetMessagesCommand {
	if c.PerPage == 0 {
		c.PerPage = DefaultPerPage
	}
	if c.Page == 0 {
		c.Page = DefaultPage
	}
	if c.Sorting == "" {
		c.Sorting = Ascending
	}
	return c
}

func (c GetMessagesCommand) Validate() error {
	return check(c)
}

// ValidateProfiles rejects the zero profile
func ValidateProfiles(ids []ProfileID) error {
	if err := validate.Var(ids, "dive,required"); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}

// ValidateBodyLength bounds the body in runes
func ValidateBodyLength(body string, maxLength int) error {
	if maxLength <= 0 {
		return nil
	}
	if err := validate.Var(body, fmt.Sprintf("max=%d", maxLength)); err != nil {
		return fmt.Errorf("%w: body exceeds %d characters", errors.ErrInvalidCommand, maxLength)
	}
	return nil
}

func check(command any) error {
	if err := validate.Struct(command); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}
