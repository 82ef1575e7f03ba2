package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
)

// ErrApplicationNotFound is returned when the referenced application does not exist
var ErrApplicationNotFound = errors.New("messaging: application not found")

// StartConversationInput carries the data to open (or re-open) the thread for
// an application. ActorID is the authenticated user clicking "message".
type StartConversationInput struct {
	ActorID       string
	ApplicationID string
}

// StartConversationUseCase opens the single conversation for an application.
// It is idempotent: repeated or concurrent calls for the same application all
// resolve to the same conversation, backed by the unique constraint on
// application_id.
// Hexagonal: depends on repository port only
// One class per use case (own file)
type StartConversationUseCase struct {
	Repo repository.MessagingRepository
}

func NewStartConversationUseCase(repo repository.MessagingRepository) *StartConversationUseCase {
	return &StartConversationUseCase{Repo: repo}
}

// Execute resolves the application, checks the actor owns the company behind
// its posting, and upserts the conversation.
func (uc *StartConversationUseCase) Execute(ctx context.Context, in StartConversationInput) (*messaging.Conversation, error) {
	if in.ActorID == "" || in.ApplicationID == "" {
		return nil, fmt.Errorf("actor_id and application_id are required")
	}

	ref, err := uc.Repo.GetApplicationRef(ctx, in.ApplicationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Only the company side opens threads; applicants reach theirs from the
	// conversation list once it exists.
	if ref.CompanyOwnerID != in.ActorID {
		return nil, ErrForbidden
	}

	conv, err := uc.Repo.UpsertConversation(ctx, messaging.Conversation{
		ApplicationID:  ref.ID,
		UserID:         ref.ApplicantID,
		CompanyOwnerID: ref.CompanyOwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &conv, nil
}
