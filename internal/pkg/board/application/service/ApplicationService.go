package service

import (
	"context"
	"fmt"
	"log"

	qport "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/port"
	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/persistence/repository/port"
	identity "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/domain"
	identityrepo "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/repository/port"
	notiftask "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/application/task"
)

// ApplicationService handles applying to postings and both sides of the
// application lists.
type ApplicationService struct {
	repo     repository.BoardRepository
	profiles identityrepo.IdentityRepository
	queue    qport.Client // nil disables notification fan-out
}

func NewApplicationService(repo repository.BoardRepository, profiles identityrepo.IdentityRepository, queue qport.Client) *ApplicationService {
	return &ApplicationService{repo: repo, profiles: profiles, queue: queue}
}

// Apply records the user's interest in the posting. The profile upsert comes
// first so the applications row never references a missing profile; the
// (user, posting) uniqueness constraint makes a second apply fail with
// board.ErrAlreadyApplied rather than duplicating.
func (s *ApplicationService) Apply(ctx context.Context, userID string, postingID string) (*board.Application, error) {
	if userID == "" || postingID == "" {
		return nil, fmt.Errorf("board: user_id and posting_id are required")
	}

	if err := s.profiles.UpsertProfile(ctx, identity.Profile{ID: userID}); err != nil {
		return nil, fmt.Errorf("board: ensure profile: %w", err)
	}

	app, err := s.repo.CreateApplication(ctx, board.Application{PostingID: postingID, UserID: userID})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, app)
	return &app, nil
}

func (s *ApplicationService) HasApplied(ctx context.Context, userID string, postingID string) (bool, error) {
	if userID == "" || postingID == "" {
		return false, fmt.Errorf("board: user_id and posting_id are required")
	}
	return s.repo.HasApplied(ctx, userID, postingID)
}

// ListApplicants returns applications against postings of companies the
// owner holds, newest first.
func (s *ApplicationService) ListApplicants(ctx context.Context, ownerID string) ([]board.ApplicantView, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("board: owner_id is required")
	}
	return s.repo.ListApplicantsForOwner(ctx, ownerID)
}

// ListMine returns the user's own applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, userID string) ([]board.MyApplicationView, error) {
	if userID == "" {
		return nil, fmt.Errorf("board: user_id is required")
	}
	return s.repo.ListApplicationsByUser(ctx, userID)
}

// notifyOwner enqueues the application notification. Fan-out is best-effort;
// a queue failure never rolls back the application.
func (s *ApplicationService) notifyOwner(ctx context.Context, app board.Application) {
	if s.queue == nil {
		return
	}

	posting, err := s.repo.GetPosting(ctx, app.PostingID)
	if err != nil {
		log.Printf("application notify: load posting %s: %v", app.PostingID, err)
		return
	}

	applicantName := ""
	if profile, err := s.profiles.GetProfile(ctx, app.UserID); err == nil {
		applicantName = profile.DisplayName()
	}

	_, err = notiftask.Enqueue(ctx, s.queue, notiftask.NewApplicationTaskType, notiftask.NewApplicationPayload{
		OwnerID:       posting.OwnerID,
		ApplicantName: applicantName,
		PostingTitle:  posting.Title,
		ApplicationID: app.ID,
	})
	if err != nil {
		log.Printf("application notify: enqueue: %v", err)
	}
}
