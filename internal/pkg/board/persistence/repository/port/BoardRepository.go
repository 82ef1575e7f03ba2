package repository

import (
	"context"
	"errors"

	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
)

// ErrNotFound signals an absent record, including owner-guarded updates that
// matched nothing.
var ErrNotFound = errors.New("board repository: not found")

// BoardRepository defines persistence operations for companies, postings and
// applications. Owner-guarded mutations carry the acting owner id in the
// predicate so a non-owner update is indistinguishable from a missing row.
type BoardRepository interface {
	CreateCompany(ctx context.Context, c board.Company) (board.Company, error)
	ListCompaniesByOwner(ctx context.Context, ownerID string) ([]board.Company, error)
	UpdateCompany(ctx context.Context, c board.Company) error
	DeleteCompany(ctx context.Context, ownerID string, companyID string) error

	CreatePosting(ctx context.Context, ownerID string, p board.Posting) (board.Posting, error)
	ListPostingsByOwner(ctx context.Context, ownerID string) ([]board.Posting, error)
	UpdatePosting(ctx context.Context, ownerID string, p board.Posting) error
	DeletePosting(ctx context.Context, ownerID string, postingID string) error
	GetPosting(ctx context.Context, postingID string) (board.Posting, error)
	SearchPostings(ctx context.Context, q board.PostingSearch) ([]board.Posting, error)

	// CreateApplication inserts an application; a duplicate (user, posting)
	// pair yields board.ErrAlreadyApplied.
	CreateApplication(ctx context.Context, a board.Application) (board.Application, error)
	HasApplied(ctx context.Context, userID string, postingID string) (bool, error)
	ListApplicantsForOwner(ctx context.Context, ownerID string) ([]board.ApplicantView, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]board.MyApplicationView, error)
}
