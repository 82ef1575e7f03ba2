package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	identity "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/repository/port"
)

const uniqueViolation = "23505"

type PgIdentityRepository struct {
	pool *pgxpool.Pool
}

func NewPgIdentityRepository(pool *pgxpool.Pool) *PgIdentityRepository {
	return &PgIdentityRepository{pool: pool}
}

var _ repository.IdentityRepository = (*PgIdentityRepository)(nil)

func (r *PgIdentityRepository) CreateUser(ctx context.Context, email string, passwordHash string) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgIdentityRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO credentials (email, password_hash)
		VALUES ($1, $2)
		RETURNING user_id::text
	`, email, passwordHash).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return "", identity.ErrEmailTaken
	}
	return id, err
}

func (r *PgIdentityRepository) GetCredentialByEmail(ctx context.Context, email string) (identity.Credential, error) {
	if r == nil || r.pool == nil {
		return identity.Credential{}, errors.New("PgIdentityRepository: nil pool")
	}
	var cred identity.Credential
	err := r.pool.QueryRow(ctx, `
		SELECT user_id::text, email, password_hash, created_at
		FROM credentials
		WHERE email = $1
	`, email).Scan(&cred.UserID, &cred.Email, &cred.PasswordHash, &cred.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.Credential{}, repository.ErrNotFound
	}
	if err != nil {
		return identity.Credential{}, err
	}
	return cred, nil
}

func (r *PgIdentityRepository) UpsertProfile(ctx context.Context, p identity.Profile) error {
	if r == nil || r.pool == nil {
		return errors.New("PgIdentityRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, username, full_name, avatar_url, updated_at)
		VALUES ($1::uuid, $2, $3, $4, now())
		ON CONFLICT (id)
		DO UPDATE SET username   = COALESCE(EXCLUDED.username, profiles.username),
		              full_name  = COALESCE(EXCLUDED.full_name, profiles.full_name),
		              avatar_url = COALESCE(EXCLUDED.avatar_url, profiles.avatar_url),
		              updated_at = now()
	`, p.ID, p.Username, p.FullName, p.AvatarURL)
	return err
}

func (r *PgIdentityRepository) GetProfile(ctx context.Context, userID string) (identity.Profile, error) {
	if r == nil || r.pool == nil {
		return identity.Profile{}, errors.New("PgIdentityRepository: nil pool")
	}
	var p identity.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, username, full_name, avatar_url, updated_at
		FROM profiles
		WHERE id = $1::uuid
	`, userID).Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.Profile{}, repository.ErrNotFound
	}
	if err != nil {
		return identity.Profile{}, err
	}
	return p, nil
}
