package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/makazi-lab/makazi/pkg/domain/model"
)

// History returns the stored message history of a conversation.
func (uc *UseCases) History(ctx context.Context, id model.ConversationID) (*model.ConversationSession, error) {
	session, err := uc.repo.GetSession(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrConversationNotFound, "conversation not found", goerr.V(ConversationIDKey, id))
	}
	return session, nil
}

// ClearConversation removes a conversation and its gate.
func (uc *UseCases) ClearConversation(ctx context.Context, id model.ConversationID) error {
	if err := uc.repo.DeleteSession(ctx, id); err != nil {
		return goerr.Wrap(ErrConversationNotFound, "conversation not found", goerr.V(ConversationIDKey, id))
	}
	uc.gate.forget(id)
	return nil
}
