package errors

import "fmt"

var (
	ErrNotFound             = fmt.Errorf("not found")
	ErrConversationNotFound = fmt.Errorf("conversation %w", ErrNotFound)
	ErrMessageNotFound      = fmt.Errorf("message %w", ErrNotFound)
	ErrDeliveryNotFound     = fmt.Errorf("delivery %w", ErrNotFound)

	// ErrTransactionFailure is returned when a write transaction conflicted or could not commit.
	// The whole operation can be retried by the caller.
	ErrTransactionFailure = fmt.Errorf("transaction failure")
	ErrAttachmentStore    = fmt.Errorf("attachment could not be stored")
	ErrInvalidCommand     = fmt.Errorf("invalid command")

	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrInvalidPayload  = fmt.Errorf("invalid event payload")
	ErrEmptyDictionary = fmt.Errorf("no censored words have been provided")
)
