package usecase

import (
	"context"
	"fmt"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
)

// ListConversationsInput wraps the viewer identity for the conversation list.
type ListConversationsInput struct {
	UserID string
}

// ListConversationsUseCase returns the threads where the user is either the
// applicant or the company owner, newest activity first.
type ListConversationsUseCase struct {
	Repo repository.MessagingRepository
}

func NewListConversationsUseCase(repo repository.MessagingRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]messaging.ConversationView, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	views, err := uc.Repo.ListConversationViews(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return views, nil
}
