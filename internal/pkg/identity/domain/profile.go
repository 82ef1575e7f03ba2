package identity

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid email or password")
	ErrEmailTaken         = errors.New("identity: email is already registered")
	ErrNoSession          = errors.New("identity: no active session")
)

// Profile is the public face of a user: display fields shown on listings,
// applications and conversations. A row exists for every registered user;
// fields are filled in lazily from the profile editor.
type Profile struct {
	ID        string    `db:"id"`
	Username  *string   `db:"username"`
	FullName  *string   `db:"full_name"`
	AvatarURL *string   `db:"avatar_url"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DisplayName prefers full name, then username, then a fixed fallback.
func (p Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	if p.Username != nil && *p.Username != "" {
		return *p.Username
	}
	return "Unknown User"
}

// Credential holds the authentication record behind a profile.
type Credential struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
