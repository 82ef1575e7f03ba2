package service

import (
	"context"
	"fmt"
	"strings"

	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/persistence/repository/port"
)

// PostingService handles owner-side posting management and the public
// search surface.
type PostingService struct {
	repo repository.BoardRepository
}

func NewPostingService(repo repository.BoardRepository) *PostingService {
	return &PostingService{repo: repo}
}

func (s *PostingService) Create(ctx context.Context, ownerID string, p board.Posting) (*board.Posting, error) {
	if err := validatePosting(ownerID, p, true); err != nil {
		return nil, err
	}
	created, err := s.repo.CreatePosting(ctx, ownerID, p)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *PostingService) ListOwned(ctx context.Context, ownerID string) ([]board.Posting, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("board: owner_id is required")
	}
	return s.repo.ListPostingsByOwner(ctx, ownerID)
}

func (s *PostingService) Update(ctx context.Context, ownerID string, p board.Posting) error {
	if p.ID == "" {
		return fmt.Errorf("board: posting id is required")
	}
	if err := validatePosting(ownerID, p, false); err != nil {
		return err
	}
	return s.repo.UpdatePosting(ctx, ownerID, p)
}

func (s *PostingService) Delete(ctx context.Context, ownerID string, postingID string) error {
	if postingID == "" || ownerID == "" {
		return fmt.Errorf("board: posting id and owner_id are required")
	}
	return s.repo.DeletePosting(ctx, ownerID, postingID)
}

func (s *PostingService) Get(ctx context.Context, postingID string) (*board.Posting, error) {
	if postingID == "" {
		return nil, fmt.Errorf("board: posting id is required")
	}
	p, err := s.repo.GetPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Search serves the public listing: no session required.
func (s *PostingService) Search(ctx context.Context, q board.PostingSearch) ([]board.Posting, error) {
	return s.repo.SearchPostings(ctx, q)
}

func validatePosting(ownerID string, p board.Posting, needCompany bool) error {
	if ownerID == "" {
		return fmt.Errorf("board: owner_id is required")
	}
	if needCompany && p.CompanyID == "" {
		return fmt.Errorf("board: company_id is required")
	}
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("board: title and description are required")
	}
	return nil
}
