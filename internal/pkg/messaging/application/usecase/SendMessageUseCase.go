package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Content        string
}

// SendMessageResult is the persisted message plus the recipient, so callers
// can fan out delivery and notifications without a second lookup.
type SendMessageResult struct {
	Message     messaging.Message
	RecipientID string
}

// SendMessageUseCase validates and persists an outbound message.
// Empty or whitespace-only content is rejected before any repository call.
// Hexagonal: depends on repository port, returns domain entity
// One class per use case (own file)
type SendMessageUseCase struct {
	Repo repository.MessagingRepository
}

func NewSendMessageUseCase(repo repository.MessagingRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*SendMessageResult, error) {
	if in.ConversationID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("conversation_id and sender_id are required")
	}

	// Local validation first: no remote call for an empty composer.
	msg, err := messaging.NewMessage(in.ConversationID, in.SenderID, in.Content)
	if err != nil {
		return nil, err
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	recipient, ok := conv.OtherParty(in.SenderID)
	if !ok {
		return nil, messaging.ErrNotParticipant
	}

	saved, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &SendMessageResult{Message: saved, RecipientID: recipient}, nil
}
