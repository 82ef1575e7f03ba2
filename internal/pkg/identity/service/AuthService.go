package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	identity "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/repository/port"
)

const minPasswordLength = 8

// AuthService implements sign-up, sign-in and profile management over the
// identity repository and the session store.
type AuthService struct {
	repo     repository.IdentityRepository
	sessions *SessionStore
}

func NewAuthService(repo repository.IdentityRepository, sessions *SessionStore) *AuthService {
	return &AuthService{repo: repo, sessions: sessions}
}

// SignUp registers a credential and seeds an empty profile row.
func (s *AuthService) SignUp(ctx context.Context, email string, password string) (*identity.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("identity: a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("identity: password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("identity: hash password: %w", err)
	}

	userID, err := s.repo.CreateUser(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}

	profile := identity.Profile{ID: userID}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("identity: seed profile: %w", err)
	}
	return &profile, nil
}

// SignIn verifies the credential and mints a session token.
func (s *AuthService) SignIn(ctx context.Context, email string, password string) (token string, userID string, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	cred, err := s.repo.GetCredentialByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		// Same failure as a wrong password: do not leak which emails exist.
		return "", "", identity.ErrInvalidCredentials
	}
	if err != nil {
		return "", "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return "", "", identity.ErrInvalidCredentials
	}

	token, err = s.sessions.Create(ctx, cred.UserID)
	if err != nil {
		return "", "", err
	}
	return token, cred.UserID, nil
}

// SignOut invalidates the session token.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// Resolve maps a bearer token to the authenticated user id.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	return s.sessions.Resolve(ctx, token)
}

// GetProfile fetches the profile for the user.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*identity.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile upserts display fields for the user. Nil fields are left
// untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, p identity.Profile) (*identity.Profile, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("identity: profile id is required")
	}
	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	updated, err := s.repo.GetProfile(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
