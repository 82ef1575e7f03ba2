package adapter

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	board "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/board/persistence/repository/port"
)

const uniqueViolation = "23505"

type PgBoardRepository struct {
	pool *pgxpool.Pool
}

func NewPgBoardRepository(pool *pgxpool.Pool) *PgBoardRepository {
	return &PgBoardRepository{pool: pool}
}

var _ repository.BoardRepository = (*PgBoardRepository)(nil)

// ===================== Companies =====================

func (r *PgBoardRepository) CreateCompany(ctx context.Context, c board.Company) (board.Company, error) {
	if r == nil || r.pool == nil {
		return board.Company{}, errors.New("PgBoardRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO companies (owner_id, name, description, website)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING id::text, created_at
	`, c.OwnerID, c.Name, c.Description, c.Website).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return board.Company{}, err
	}
	return c, nil
}

func (r *PgBoardRepository) ListCompaniesByOwner(ctx context.Context, ownerID string) ([]board.Company, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgBoardRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, owner_id::text, name, description, website, created_at
		FROM companies
		WHERE owner_id = $1::uuid
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []board.Company
	for rows.Next() {
		var c board.Company
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Website, &c.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return companies, nil
}

func (r *PgBoardRepository) UpdateCompany(ctx context.Context, c board.Company) error {
	if r == nil || r.pool == nil {
		return errors.New("PgBoardRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE companies
		SET name = $3, description = $4, website = $5
		WHERE id = $1::uuid AND owner_id = $2::uuid
	`, c.ID, c.OwnerID, c.Name, c.Description, c.Website)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PgBoardRepository) DeleteCompany(ctx context.Context, ownerID string, companyID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgBoardRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM companies
		WHERE id = $1::uuid AND owner_id = $2::uuid
	`, companyID, ownerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ===================== Postings =====================

// CreatePosting verifies company ownership inside the insert: the select
// feeding the insert matches only companies the owner holds.
func (r *PgBoardRepository) CreatePosting(ctx context.Context, ownerID string, p board.Posting) (board.Posting, error) {
	if r == nil || r.pool == nil {
		return board.Posting{}, errors.New("PgBoardRepository: nil pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO postings (company_id, title, description, position_type, location)
		SELECT c.id, $3, $4, $5, $6
		FROM companies c
		WHERE c.id = $1::uuid AND c.owner_id = $2::uuid
		RETURNING id::text, created_at, updated_at
	`, p.CompanyID, ownerID, p.Title, p.Description, p.PositionType, p.Location).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return board.Posting{}, repository.ErrNotFound
	}
	if err != nil {
		return board.Posting{}, err
	}
	return p, nil
}

func (r *PgBoardRepository) ListPostingsByOwner(ctx context.Context, ownerID string) ([]board.Posting, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgBoardRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT p.id::text, p.company_id::text, c.owner_id::text, c.name, p.title, p.description,
		       p.position_type, p.location, p.created_at, p.updated_at
		FROM postings p
		JOIN companies c ON c.id = p.company_id
		WHERE c.owner_id = $1::uuid
		ORDER BY p.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

func (r *PgBoardRepository) UpdatePosting(ctx context.Context, ownerID string, p board.Posting) error {
	if r == nil || r.pool == nil {
		return errors.New("PgBoardRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE postings
		SET title = $3, description = $4, position_type = $5, location = $6, updated_at = now()
		WHERE id = $1::uuid
		  AND company_id IN (SELECT id FROM companies WHERE owner_id = $2::uuid)
	`, p.ID, ownerID, p.Title, p.Description, p.PositionType, p.Location)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PgBoardRepository) DeletePosting(ctx context.Context, ownerID string, postingID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgBoardRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM postings
		WHERE id = $1::uuid
		  AND company_id IN (SELECT id FROM companies WHERE owner_id = $2::uuid)
	`, postingID, ownerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PgBoardRepository) GetPosting(ctx context.Context, postingID string) (board.Posting, error) {
	if r == nil || r.pool == nil {
		return board.Posting{}, errors.New("PgBoardRepository: nil pool")
	}
	var p board.Posting
	err := r.pool.QueryRow(ctx, `
		SELECT p.id::text, p.company_id::text, c.owner_id::text, c.name, p.title, p.description,
		       p.position_type, p.location, p.created_at, p.updated_at
		FROM postings p
		JOIN companies c ON c.id = p.company_id
		WHERE p.id = $1::uuid
	`, postingID).Scan(&p.ID, &p.CompanyID, &p.OwnerID, &p.CompanyName, &p.Title, &p.Description,
		&p.PositionType, &p.Location, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return board.Posting{}, repository.ErrNotFound
	}
	if err != nil {
		return board.Posting{}, err
	}
	return p, nil
}

func (r *PgBoardRepository) SearchPostings(ctx context.Context, q board.PostingSearch) ([]board.Posting, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgBoardRepository: nil pool")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT p.id::text, p.company_id::text, c.owner_id::text, c.name, p.title, p.description,
		       p.position_type, p.location, p.created_at, p.updated_at
		FROM postings p
		JOIN companies c ON c.id = p.company_id
		WHERE true
	`)
	args := []any{}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		args = append(args, "%"+kw+"%")
		n := strconv.Itoa(len(args))
		sb.WriteString(" AND (p.title ILIKE $" + n + " OR p.description ILIKE $" + n + ")")
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		args = append(args, "%"+loc+"%")
		sb.WriteString(" AND p.location ILIKE $" + strconv.Itoa(len(args)))
	}
	if pt := strings.TrimSpace(q.PositionType); pt != "" {
		args = append(args, "%"+pt+"%")
		sb.WriteString(" AND p.position_type ILIKE $" + strconv.Itoa(len(args)))
	}
	args = append(args, limit)
	sb.WriteString(" ORDER BY p.created_at DESC LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostings(rows)
}

func scanPostings(rows pgx.Rows) ([]board.Posting, error) {
	var postings []board.Posting
	for rows.Next() {
		var p board.Posting
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.OwnerID, &p.CompanyName, &p.Title, &p.Description,
			&p.PositionType, &p.Location, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return postings, nil
}

// ===================== Applications =====================

func (r *PgBoardRepository) CreateApplication(ctx context.Context, a board.Application) (board.Application, error) {
	if r == nil || r.pool == nil {
		return board.Application{}, errors.New("PgBoardRepository: nil pool")
	}
	if a.Status == "" {
		a.Status = board.StatusApplied
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO applications (posting_id, user_id, status)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING id::text, created_at
	`, a.PostingID, a.UserID, a.Status).Scan(&a.ID, &a.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return board.Application{}, board.ErrAlreadyApplied
	}
	if err != nil {
		return board.Application{}, err
	}
	return a, nil
}

func (r *PgBoardRepository) HasApplied(ctx context.Context, userID string, postingID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgBoardRepository: nil pool")
	}
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE user_id = $1::uuid AND posting_id = $2::uuid
		)
	`, userID, postingID).Scan(&ok)
	return ok, err
}

func (r *PgBoardRepository) ListApplicantsForOwner(ctx context.Context, ownerID string) ([]board.ApplicantView, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgBoardRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT a.id::text, a.posting_id::text, a.user_id::text, a.status, a.created_at,
		       COALESCE(pr.full_name, pr.username, ''), p.title
		FROM applications a
		JOIN postings p ON p.id = a.posting_id
		JOIN companies c ON c.id = p.company_id
		JOIN profiles pr ON pr.id = a.user_id
		WHERE c.owner_id = $1::uuid
		ORDER BY a.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []board.ApplicantView
	for rows.Next() {
		var v board.ApplicantView
		if err := rows.Scan(&v.ID, &v.PostingID, &v.UserID, &v.Status, &v.CreatedAt,
			&v.ApplicantName, &v.PostingTitle); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return views, nil
}

func (r *PgBoardRepository) ListApplicationsByUser(ctx context.Context, userID string) ([]board.MyApplicationView, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgBoardRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT a.id::text, a.posting_id::text, a.user_id::text, a.status, a.created_at,
		       p.title, c.name
		FROM applications a
		JOIN postings p ON p.id = a.posting_id
		JOIN companies c ON c.id = p.company_id
		WHERE a.user_id = $1::uuid
		ORDER BY a.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []board.MyApplicationView
	for rows.Next() {
		var v board.MyApplicationView
		if err := rows.Scan(&v.ID, &v.PostingID, &v.UserID, &v.Status, &v.CreatedAt,
			&v.PostingTitle, &v.CompanyName); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return views, nil
}
