package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
)

// GetMessagesInput carries parameters to fetch the history of a conversation.
// ViewerID gates access: only participants may read the thread.
type GetMessagesInput struct {
	ConversationID string
	ViewerID       string
	Limit          int
	Offset         int
}

// GetMessagesUseCase loads history for a conversation, created_at ascending.
// Hexagonal: depends only on repository port
// One class per use case (own file)
type GetMessagesUseCase struct {
	Repo repository.MessagingRepository
}

func NewGetMessagesUseCase(repo repository.MessagingRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]messaging.Message, error) {
	if in.ConversationID == "" || in.ViewerID == "" {
		return nil, fmt.Errorf("conversation_id and viewer_id are required")
	}

	// An unknown conversation surfaces as not-found, not as a participation
	// failure.
	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if _, ok := conv.OtherParty(in.ViewerID); !ok {
		return nil, messaging.ErrNotParticipant
	}

	msgs, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
