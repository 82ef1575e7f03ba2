package repository

import (
	"context"
	"errors"

	identity "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/domain"
)

// ErrNotFound signals an absent record on a single-record lookup.
var ErrNotFound = errors.New("identity repository: not found")

// IdentityRepository defines persistence operations for credentials and profiles.
type IdentityRepository interface {
	// CreateUser stores a credential and returns the new user id. A duplicate
	// email yields identity.ErrEmailTaken.
	CreateUser(ctx context.Context, email string, passwordHash string) (string, error)

	GetCredentialByEmail(ctx context.Context, email string) (identity.Credential, error)

	// UpsertProfile creates the profile row if missing and otherwise updates
	// the provided display fields. The "self-healing" upsert: callers may rely
	// on it to guarantee a profile exists before referencing it.
	UpsertProfile(ctx context.Context, p identity.Profile) error

	GetProfile(ctx context.Context, userID string) (identity.Profile, error)
}
