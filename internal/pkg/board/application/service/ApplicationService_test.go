package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/port"
	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/persistence/repository/port"
	identity "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/domain"
	identityrepo "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/repository/port"
	notiftask "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/application/task"
)

// fakeBoardRepository covers the slice of the port the application service
// touches; the rest panics to surface accidental use.
type fakeBoardRepository struct {
	postings     map[string]board.Posting
	applications map[string]board.Application // keyed by user_id+posting_id
}

func newFakeBoardRepository() *fakeBoardRepository {
	return &fakeBoardRepository{
		postings:     make(map[string]board.Posting),
		applications: make(map[string]board.Application),
	}
}

var _ repository.BoardRepository = (*fakeBoardRepository)(nil)

func (f *fakeBoardRepository) CreateCompany(context.Context, board.Company) (board.Company, error) {
	panic("not used")
}
func (f *fakeBoardRepository) ListCompaniesByOwner(context.Context, string) ([]board.Company, error) {
	panic("not used")
}
func (f *fakeBoardRepository) UpdateCompany(context.Context, board.Company) error { panic("not used") }
func (f *fakeBoardRepository) DeleteCompany(context.Context, string, string) error {
	panic("not used")
}
func (f *fakeBoardRepository) CreatePosting(context.Context, string, board.Posting) (board.Posting, error) {
	panic("not used")
}
func (f *fakeBoardRepository) ListPostingsByOwner(context.Context, string) ([]board.Posting, error) {
	panic("not used")
}
func (f *fakeBoardRepository) UpdatePosting(context.Context, string, board.Posting) error {
	panic("not used")
}
func (f *fakeBoardRepository) DeletePosting(context.Context, string, string) error {
	panic("not used")
}
func (f *fakeBoardRepository) SearchPostings(context.Context, board.PostingSearch) ([]board.Posting, error) {
	panic("not used")
}
func (f *fakeBoardRepository) ListApplicantsForOwner(context.Context, string) ([]board.ApplicantView, error) {
	return nil, nil
}
func (f *fakeBoardRepository) ListApplicationsByUser(context.Context, string) ([]board.MyApplicationView, error) {
	return nil, nil
}

func (f *fakeBoardRepository) GetPosting(_ context.Context, postingID string) (board.Posting, error) {
	p, ok := f.postings[postingID]
	if !ok {
		return board.Posting{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeBoardRepository) CreateApplication(_ context.Context, a board.Application) (board.Application, error) {
	key := a.UserID + "/" + a.PostingID
	if _, ok := f.applications[key]; ok {
		return board.Application{}, board.ErrAlreadyApplied
	}
	a.ID = uuid.NewString()
	a.Status = board.StatusApplied
	a.CreatedAt = time.Now().UTC()
	f.applications[key] = a
	return a, nil
}

func (f *fakeBoardRepository) HasApplied(_ context.Context, userID string, postingID string) (bool, error) {
	_, ok := f.applications[userID+"/"+postingID]
	return ok, nil
}

// fakeProfiles records upserts so tests can check the self-healing call.
type fakeProfiles struct {
	upserts []string
	names   map[string]identity.Profile
}

var _ identityrepo.IdentityRepository = (*fakeProfiles)(nil)

func (f *fakeProfiles) CreateUser(context.Context, string, string) (string, error) {
	panic("not used")
}
func (f *fakeProfiles) GetCredentialByEmail(context.Context, string) (identity.Credential, error) {
	panic("not used")
}
func (f *fakeProfiles) UpsertProfile(_ context.Context, p identity.Profile) error {
	f.upserts = append(f.upserts, p.ID)
	return nil
}
func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (identity.Profile, error) {
	p, ok := f.names[userID]
	if !ok {
		return identity.Profile{}, identityrepo.ErrNotFound
	}
	return p, nil
}

// fakeQueue captures enqueued tasks.
type fakeQueue struct {
	tasks []qport.Task
}

var _ qport.Client = (*fakeQueue)(nil)

func (f *fakeQueue) Enqueue(_ context.Context, t qport.Task, _ ...qport.EnqueueOption) (string, error) {
	f.tasks = append(f.tasks, t)
	return uuid.NewString(), nil
}
func (f *fakeQueue) Close() error { return nil }

func TestApplyEnsuresProfileAndNotifiesOwner(t *testing.T) {
	repo := newFakeBoardRepository()
	repo.postings["posting-1"] = board.Posting{ID: "posting-1", OwnerID: "owner-1", Title: "Backend Engineer"}

	name := "Yamada Taro"
	profiles := &fakeProfiles{names: map[string]identity.Profile{
		"applicant-1": {ID: "applicant-1", FullName: &name},
	}}
	queue := &fakeQueue{}
	svc := NewApplicationService(repo, profiles, queue)

	app, err := svc.Apply(context.Background(), "applicant-1", "posting-1")
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, board.StatusApplied, app.Status)

	assert.Equal(t, []string{"applicant-1"}, profiles.upserts)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, notiftask.NewApplicationTaskType, queue.tasks[0].Type)

	var payload notiftask.NewApplicationPayload
	require.NoError(t, json.Unmarshal(queue.tasks[0].Payload, &payload))
	assert.Equal(t, "owner-1", payload.OwnerID)
	assert.Equal(t, "Yamada Taro", payload.ApplicantName)
	assert.Equal(t, "Backend Engineer", payload.PostingTitle)
}

func TestApplyTwiceReturnsAlreadyApplied(t *testing.T) {
	repo := newFakeBoardRepository()
	repo.postings["posting-1"] = board.Posting{ID: "posting-1", OwnerID: "owner-1", Title: "Backend Engineer"}
	svc := NewApplicationService(repo, &fakeProfiles{}, nil)

	_, err := svc.Apply(context.Background(), "applicant-1", "posting-1")
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), "applicant-1", "posting-1")
	assert.ErrorIs(t, err, board.ErrAlreadyApplied)
}

func TestApplyWithNilQueueSkipsFanOut(t *testing.T) {
	repo := newFakeBoardRepository()
	repo.postings["posting-1"] = board.Posting{ID: "posting-1", OwnerID: "owner-1", Title: "Backend Engineer"}
	svc := NewApplicationService(repo, &fakeProfiles{}, nil)

	_, err := svc.Apply(context.Background(), "applicant-1", "posting-1")
	require.NoError(t, err)
}

func TestHasApplied(t *testing.T) {
	repo := newFakeBoardRepository()
	repo.postings["posting-1"] = board.Posting{ID: "posting-1", OwnerID: "owner-1", Title: "Backend Engineer"}
	svc := NewApplicationService(repo, &fakeProfiles{}, nil)

	applied, err := svc.HasApplied(context.Background(), "applicant-1", "posting-1")
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = svc.Apply(context.Background(), "applicant-1", "posting-1")
	require.NoError(t, err)

	applied, err = svc.HasApplied(context.Background(), "applicant-1", "posting-1")
	require.NoError(t, err)
	assert.True(t, applied)
}
