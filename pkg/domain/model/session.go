package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/makazi-lab/makazi/pkg/domain/types"
)

// MaxSessionMessages caps a conversation history at the most recent 10
// entries (5 user/assistant exchanges). Older entries are evicted first.
const MaxSessionMessages = 10

// ConversationID is an opaque identifier for one conversation.
type ConversationID string

// NewConversationID generates a new UUID v4 ConversationID
func NewConversationID() ConversationID {
	return ConversationID(uuid.New().String())
}

// String returns the string representation of the conversation ID
func (c ConversationID) String() string {
	return string(c)
}

// Message is a single history entry.
type Message struct {
	Role    types.Role `json:"role"`
	Content string     `json:"content"`
}

// ConversationSession is the bounded in-memory message history of one
// conversation. Sessions never survive a process restart.
type ConversationSession struct {
	ID        ConversationID
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConversationSession creates an empty session for the given ID.
func NewConversationSession(id ConversationID) *ConversationSession {
	now := time.Now()
	return &ConversationSession{
		ID:        id,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds one user/assistant exchange and evicts the oldest entries once
// the cap is exceeded. Exactly one pair is appended per turn.
func (s *ConversationSession) Append(userContent, assistantContent string) {
	s.Messages = append(s.Messages,
		Message{Role: types.RoleUser, Content: userContent},
		Message{Role: types.RoleAssistant, Content: assistantContent},
	)
	if len(s.Messages) > MaxSessionMessages {
		s.Messages = s.Messages[len(s.Messages)-MaxSessionMessages:]
	}
	s.UpdatedAt = time.Now()
}

// RecentExchanges returns up to the last n user/assistant exchanges in
// chronological order.
func (s *ConversationSession) RecentExchanges(n int) []Message {
	limit := n * 2
	if limit >= len(s.Messages) {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-limit:]
}
