package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	cacheport "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/cache/port"
	identity "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/domain"
)

const sessionKeyPrefix = "session:"

// DefaultSessionTTL applies when SESSION_TTL is unset or unparsable.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore mints and resolves opaque bearer tokens backed by the cache.
// Expiry is handled by the cache TTL; there is no refresh flow, a token
// simply lapses.
type SessionStore struct {
	cache cacheport.Cache
	ttl   time.Duration
}

// NewSessionStore builds a store with the given TTL; ttl <= 0 falls back to
// DefaultSessionTTL.
func NewSessionStore(cache cacheport.Cache, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{cache: cache, ttl: ttl}
}

// SessionTTLFromEnv reads SESSION_TTL as a Go duration string.
func SessionTTLFromEnv() time.Duration {
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return DefaultSessionTTL
}

// Create mints a token for the user and stores it with the configured TTL.
func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, userID, s.ttl); err != nil {
		return "", fmt.Errorf("session: store token: %w", err)
	}
	return token, nil
}

// Resolve maps a token back to its user id. An unknown or expired token is
// reported as identity.ErrNoSession.
func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", identity.ErrNoSession
	}
	userID, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, cacheport.ErrMiss) {
		return "", identity.ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("session: resolve token: %w", err)
	}
	return userID, nil
}

// Destroy invalidates the token. Destroying an unknown token is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := s.cache.Del(ctx, sessionKeyPrefix+token)
	return err
}
