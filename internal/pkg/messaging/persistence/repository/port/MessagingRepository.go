package repository

import (
	"context"
	"errors"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
)

// ErrNotFound signals that a single-record lookup matched nothing. Callers
// must treat it as an absent state, not as a transport failure.
var ErrNotFound = errors.New("messaging repository: not found")

// MessagingRepository defines persistence operations for the messaging domain.
type MessagingRepository interface {
	// UpsertConversation inserts a conversation for its application unless one
	// already exists, and returns the surviving row either way. Relies on a
	// unique constraint on application_id so two concurrent calls converge on
	// one conversation, and the loser of the race still receives that row
	// rather than an error.
	UpsertConversation(ctx context.Context, c messaging.Conversation) (messaging.Conversation, error)

	GetConversation(ctx context.Context, conversationID string) (messaging.Conversation, error)

	// ListConversationViews returns every conversation where userID is either
	// participant, enriched with the other party's display name and posting
	// title, ordered by latest activity descending.
	ListConversationViews(ctx context.Context, userID string) ([]messaging.ConversationView, error)

	SaveMessage(ctx context.Context, m messaging.Message) (messaging.Message, error)

	// GetMessagesByConversation returns history ordered by created_at ascending.
	GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]messaging.Message, error)

	// GetApplicationRef resolves the application metadata messaging needs to
	// open a conversation.
	GetApplicationRef(ctx context.Context, applicationID string) (messaging.ApplicationRef, error)
}
