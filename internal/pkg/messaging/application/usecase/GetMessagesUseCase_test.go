package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/persistence/repository/port"
)

func TestGetMessagesRequiresParticipation(t *testing.T) {
	repo := newFakeMessagingRepository()
	conv := seedConversation(repo)
	uc := NewGetMessagesUseCase(repo)

	_, err := uc.Execute(context.Background(), GetMessagesInput{
		ConversationID: conv.ID,
		ViewerID:       "stranger",
	})
	assert.ErrorIs(t, err, messaging.ErrNotParticipant)
}

func TestGetMessagesUnknownConversation(t *testing.T) {
	repo := newFakeMessagingRepository()
	uc := NewGetMessagesUseCase(repo)

	_, err := uc.Execute(context.Background(), GetMessagesInput{
		ConversationID: "missing",
		ViewerID:       "applicant-1",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NotErrorIs(t, err, messaging.ErrNotParticipant)
}

func TestGetMessagesReturnsThread(t *testing.T) {
	repo := newFakeMessagingRepository()
	conv := seedConversation(repo)
	base := time.Now().UTC()
	repo.messages = []messaging.Message{
		{ID: "m1", ConversationID: conv.ID, SenderID: conv.UserID, Content: "hi", CreatedAt: base},
		{ID: "m2", ConversationID: conv.ID, SenderID: conv.CompanyOwnerID, Content: "hello", CreatedAt: base.Add(time.Minute)},
		{ID: "m3", ConversationID: "other", SenderID: "x", Content: "noise", CreatedAt: base},
	}
	uc := NewGetMessagesUseCase(repo)

	msgs, err := uc.Execute(context.Background(), GetMessagesInput{
		ConversationID: conv.ID,
		ViewerID:       conv.UserID,
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m2", msgs[1].ID)
}
