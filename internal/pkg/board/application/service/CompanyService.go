package service

import (
	"context"
	"fmt"
	"strings"

	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/persistence/repository/port"
)

// CompanyService handles owner-side company management.
type CompanyService struct {
	repo repository.BoardRepository
}

func NewCompanyService(repo repository.BoardRepository) *CompanyService {
	return &CompanyService{repo: repo}
}

func (s *CompanyService) Create(ctx context.Context, ownerID string, c board.Company) (*board.Company, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("board: owner_id is required")
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("board: company name is required")
	}
	c.OwnerID = ownerID

	created, err := s.repo.CreateCompany(ctx, c)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CompanyService) ListOwned(ctx context.Context, ownerID string) ([]board.Company, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("board: owner_id is required")
	}
	return s.repo.ListCompaniesByOwner(ctx, ownerID)
}

func (s *CompanyService) Update(ctx context.Context, ownerID string, c board.Company) error {
	if c.ID == "" || ownerID == "" {
		return fmt.Errorf("board: company id and owner_id are required")
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("board: company name is required")
	}
	c.OwnerID = ownerID
	return s.repo.UpdateCompany(ctx, c)
}

func (s *CompanyService) Delete(ctx context.Context, ownerID string, companyID string) error {
	if companyID == "" || ownerID == "" {
		return fmt.Errorf("board: company id and owner_id are required")
	}
	return s.repo.DeleteCompany(ctx, ownerID, companyID)
}
