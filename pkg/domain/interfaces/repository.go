package interfaces

import (
	"context"

	"github.com/makazi-lab/makazi/pkg/domain/model"
)

// Repository defines the interface for conversation state persistence.
// Sessions are the only persisted aggregate; the knowledge corpus and the
// property catalog are loaded from files and never written back.
type Repository interface {
	// GetSession retrieves a session by conversation ID
	GetSession(ctx context.Context, id model.ConversationID) (*model.ConversationSession, error)

	// PutSession stores a session, replacing any previous state
	PutSession(ctx context.Context, session *model.ConversationSession) error

	// DeleteSession removes a session by conversation ID
	DeleteSession(ctx context.Context, id model.ConversationID) error

	// ListSessionIDs returns the IDs of all live sessions
	ListSessionIDs(ctx context.Context) ([]model.ConversationID, error)

	// Close releases repository resources
	Close() error
}
