package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/cache/port"
	identity "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/domain"
	repository "github.com/D-matsu-portfolio/matching-board/internal/pkg/identity/repository/port"
)

// memoryCache implements the cache port for tests. TTL is honored lazily on Get.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]cacheEntry)}
}

var _ cacheport.Cache = (*memoryCache)(nil)

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", cacheport.ErrMiss
	}
	return e.value, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := cacheEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.entries[k]; ok {
			delete(c.entries, k)
			n++
		}
	}
	return n, nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }
func (c *memoryCache) Close() error               { return nil }

// fakeIdentityRepository keeps credentials and profiles in maps.
type fakeIdentityRepository struct {
	credentials map[string]identity.Credential // keyed by email
	profiles    map[string]identity.Profile    // keyed by user id
}

func newFakeIdentityRepository() *fakeIdentityRepository {
	return &fakeIdentityRepository{
		credentials: make(map[string]identity.Credential),
		profiles:    make(map[string]identity.Profile),
	}
}

var _ repository.IdentityRepository = (*fakeIdentityRepository)(nil)

func (f *fakeIdentityRepository) CreateUser(_ context.Context, email string, passwordHash string) (string, error) {
	if _, ok := f.credentials[email]; ok {
		return "", identity.ErrEmailTaken
	}
	id := uuid.NewString()
	f.credentials[email] = identity.Credential{
		UserID:       id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	return id, nil
}

func (f *fakeIdentityRepository) GetCredentialByEmail(_ context.Context, email string) (identity.Credential, error) {
	cred, ok := f.credentials[email]
	if !ok {
		return identity.Credential{}, repository.ErrNotFound
	}
	return cred, nil
}

func (f *fakeIdentityRepository) UpsertProfile(_ context.Context, p identity.Profile) error {
	existing, ok := f.profiles[p.ID]
	if !ok {
		f.profiles[p.ID] = p
		return nil
	}
	if p.Username != nil {
		existing.Username = p.Username
	}
	if p.FullName != nil {
		existing.FullName = p.FullName
	}
	if p.AvatarURL != nil {
		existing.AvatarURL = p.AvatarURL
	}
	f.profiles[p.ID] = existing
	return nil
}

func (f *fakeIdentityRepository) GetProfile(_ context.Context, userID string) (identity.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return identity.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func newTestAuthService() (*AuthService, *fakeIdentityRepository) {
	repo := newFakeIdentityRepository()
	sessions := NewSessionStore(newMemoryCache(), time.Hour)
	return NewAuthService(repo, sessions), repo
}

func TestSignUpSeedsProfile(t *testing.T) {
	auth, repo := newTestAuthService()

	profile, err := auth.SignUp(context.Background(), "Taro@Example.com ", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, profile.ID)

	_, ok := repo.profiles[profile.ID]
	assert.True(t, ok, "profile row must exist after sign-up")

	cred, ok := repo.credentials["taro@example.com"]
	require.True(t, ok, "email must be normalized to lower case")
	assert.NotEqual(t, "hunter2hunter2", cred.PasswordHash)
}

func TestSignUpValidation(t *testing.T) {
	auth, _ := newTestAuthService()

	_, err := auth.SignUp(context.Background(), "not-an-email", "hunter2hunter2")
	assert.Error(t, err)

	_, err = auth.SignUp(context.Background(), "a@b.com", "short")
	assert.Error(t, err)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService()

	_, err := auth.SignUp(context.Background(), "a@b.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = auth.SignUp(context.Background(), "a@b.com", "anotherpassword")
	assert.ErrorIs(t, err, identity.ErrEmailTaken)
}

func TestSignInAndResolve(t *testing.T) {
	auth, _ := newTestAuthService()
	ctx := context.Background()

	profile, err := auth.SignUp(ctx, "a@b.com", "hunter2hunter2")
	require.NoError(t, err)

	token, userID, err := auth.SignIn(ctx, "a@b.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, userID)

	resolved, err := auth.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, resolved)
}

func TestSignInWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	auth, _ := newTestAuthService()
	ctx := context.Background()

	_, err := auth.SignUp(ctx, "a@b.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, errWrong := auth.SignIn(ctx, "a@b.com", "wrong-password")
	_, _, errUnknown := auth.SignIn(ctx, "ghost@b.com", "whatever")

	assert.ErrorIs(t, errWrong, identity.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, identity.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestSignOutInvalidatesToken(t *testing.T) {
	auth, _ := newTestAuthService()
	ctx := context.Background()

	_, err := auth.SignUp(ctx, "a@b.com", "hunter2hunter2")
	require.NoError(t, err)
	token, _, err := auth.SignIn(ctx, "a@b.com", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(ctx, token))

	_, err = auth.Resolve(ctx, token)
	assert.ErrorIs(t, err, identity.ErrNoSession)
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	auth, _ := newTestAuthService()
	ctx := context.Background()

	profile, err := auth.SignUp(ctx, "a@b.com", "hunter2hunter2")
	require.NoError(t, err)

	name := "Yamada Taro"
	_, err = auth.UpdateProfile(ctx, identity.Profile{ID: profile.ID, FullName: &name})
	require.NoError(t, err)

	avatar := "https://example.com/a.png"
	updated, err := auth.UpdateProfile(ctx, identity.Profile{ID: profile.ID, AvatarURL: &avatar})
	require.NoError(t, err)

	require.NotNil(t, updated.FullName)
	assert.Equal(t, name, *updated.FullName)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, avatar, *updated.AvatarURL)
	assert.Equal(t, name, updated.DisplayName())
}

func TestDisplayNameFallbacks(t *testing.T) {
	var p identity.Profile
	assert.Equal(t, "Unknown User", p.DisplayName())

	username := "taro"
	p.Username = &username
	assert.Equal(t, "taro", p.DisplayName())

	full := "Yamada Taro"
	p.FullName = &full
	assert.Equal(t, "Yamada Taro", p.DisplayName())
}
