package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrConversationNotFound = errors.New("conversation not found")
)

// Context keys for error values
const (
	ConversationIDKey = "conversation_id"
)
