package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messaging "github.com/D-matsu-portfolio/matching-board/internal/pkg/messaging/application/domain"
)

func seedApplication(repo *fakeMessagingRepository) messaging.ApplicationRef {
	ref := messaging.ApplicationRef{
		ID:             "app-1",
		ApplicantID:    "applicant-1",
		PostingID:      "posting-1",
		PostingTitle:   "Backend Engineer",
		CompanyOwnerID: "owner-1",
	}
	repo.applications[ref.ID] = ref
	return ref
}

func TestStartConversationCreatesThread(t *testing.T) {
	repo := newFakeMessagingRepository()
	ref := seedApplication(repo)
	uc := NewStartConversationUseCase(repo)

	conv, err := uc.Execute(context.Background(), StartConversationInput{
		ActorID:       ref.CompanyOwnerID,
		ApplicationID: ref.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, ref.ID, conv.ApplicationID)
	assert.Equal(t, ref.ApplicantID, conv.UserID)
	assert.Equal(t, ref.CompanyOwnerID, conv.CompanyOwnerID)
}

func TestStartConversationIsIdempotent(t *testing.T) {
	repo := newFakeMessagingRepository()
	ref := seedApplication(repo)
	uc := NewStartConversationUseCase(repo)

	in := StartConversationInput{ActorID: ref.CompanyOwnerID, ApplicationID: ref.ID}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.conversations, 1)
}

func TestStartConversationRejectsNonOwner(t *testing.T) {
	repo := newFakeMessagingRepository()
	ref := seedApplication(repo)
	uc := NewStartConversationUseCase(repo)

	_, err := uc.Execute(context.Background(), StartConversationInput{
		ActorID:       ref.ApplicantID,
		ApplicationID: ref.ID,
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.conversations)
}

func TestStartConversationReturnsSurvivorOfConcurrentCreate(t *testing.T) {
	repo := newFakeMessagingRepository()
	ref := seedApplication(repo)
	// Another request already committed the conversation for this application.
	existing := seedConversation(repo)
	uc := NewStartConversationUseCase(repo)

	conv, err := uc.Execute(context.Background(), StartConversationInput{
		ActorID:       ref.CompanyOwnerID,
		ApplicationID: ref.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, conv.ID)
	assert.Len(t, repo.conversations, 1)
}

func TestStartConversationMissingApplication(t *testing.T) {
	repo := newFakeMessagingRepository()
	uc := NewStartConversationUseCase(repo)

	_, err := uc.Execute(context.Background(), StartConversationInput{
		ActorID:       "owner-1",
		ApplicationID: "nope",
	})
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestStartConversationWrapsRepositoryFailure(t *testing.T) {
	repo := newFakeMessagingRepository()
	repo.failWith = errors.New("connection refused")
	uc := NewStartConversationUseCase(repo)

	_, err := uc.Execute(context.Background(), StartConversationInput{
		ActorID:       "owner-1",
		ApplicationID: "app-1",
	})
	assert.ErrorIs(t, err, ErrPersistence)
}
