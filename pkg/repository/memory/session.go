package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/makazi-lab/makazi/pkg/domain/model"
)

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[model.ConversationID]*model.ConversationSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[model.ConversationID]*model.ConversationSession),
	}
}

func copySession(s *model.ConversationSession) *model.ConversationSession {
	copied := &model.ConversationSession{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	copied.Messages = make([]model.Message, len(s.Messages))
	copy(copied.Messages, s.Messages)
	return copied
}

// GetSession retrieves a session by conversation ID
func (m *Memory) GetSession(ctx context.Context, id model.ConversationID) (*model.ConversationSession, error) {
	m.sessions.mu.RLock()
	defer m.sessions.mu.RUnlock()

	session, exists := m.sessions.sessions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("conversationID", id))
	}

	return copySession(session), nil
}

// PutSession stores a session, replacing any previous state
func (m *Memory) PutSession(ctx context.Context, session *model.ConversationSession) error {
	if session == nil {
		return goerr.New("session is nil")
	}
	if session.ID == "" {
		return goerr.New("session ID is required")
	}

	m.sessions.mu.Lock()
	defer m.sessions.mu.Unlock()

	m.sessions.sessions[session.ID] = copySession(session)
	return nil
}

// DeleteSession removes a session by conversation ID
func (m *Memory) DeleteSession(ctx context.Context, id model.ConversationID) error {
	m.sessions.mu.Lock()
	defer m.sessions.mu.Unlock()

	if _, exists := m.sessions.sessions[id]; !exists {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("conversationID", id))
	}

	delete(m.sessions.sessions, id)
	return nil
}

// ListSessionIDs returns the IDs of all live sessions
func (m *Memory) ListSessionIDs(ctx context.Context) ([]model.ConversationID, error) {
	m.sessions.mu.RLock()
	defer m.sessions.mu.RUnlock()

	ids := make([]model.ConversationID, 0, len(m.sessions.sessions))
	for id := range m.sessions.sessions {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	return ids, nil
}
