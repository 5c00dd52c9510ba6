package memory

import (
	"github.com/makazi-lab/makazi/pkg/domain/interfaces"
)

// Memory is the in-process repository. Sessions are intentionally volatile:
// conversation state must not survive a process restart.
type Memory struct {
	sessions *sessionStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		sessions: newSessionStore(),
	}
}

// Close releases repository resources. The in-memory backend holds none.
func (m *Memory) Close() error {
	return nil
}
