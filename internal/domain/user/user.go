package user

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/kailas-cloud/esdocs/internal/domain"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,64}$`)

// MaxBioLength is the maximum bio size in bytes.
const MaxBioLength = 4096

// Fields carries the user-supplied attributes.
type Fields struct {
	Username string
	Email    string
	FullName string
	Bio      string
	IsActive bool
}

// User is the user aggregate (immutable value object).
type User struct {
	id        string
	username  string
	email     string
	fullName  string
	bio       string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// New validates and creates a User without an ID or timestamps.
func New(f Fields) (User, error) {
	if !usernameRegex.MatchString(f.Username) {
		return User{}, fmt.Errorf(
			"username must be 1-64 chars of letters, digits, '_', '.' or '-': %w", domain.ErrValidation,
		)
	}
	if f.Email == "" {
		return User{}, fmt.Errorf("email is required: %w", domain.ErrValidation)
	}
	addr, err := mail.ParseAddress(f.Email)
	if err != nil || addr.Address != f.Email {
		return User{}, fmt.Errorf("email %q is not a valid address: %w", f.Email, domain.ErrValidation)
	}
	if strings.TrimSpace(f.FullName) == "" {
		return User{}, fmt.Errorf("full_name is required: %w", domain.ErrValidation)
	}
	if len(f.Bio) > MaxBioLength {
		return User{}, fmt.Errorf("bio too long (max %d bytes): %w", MaxBioLength, domain.ErrValidation)
	}
	return User{
		username: f.Username,
		email:    f.Email,
		fullName: f.FullName,
		bio:      f.Bio,
		isActive: f.IsActive,
	}, nil
}

// Reconstruct creates a User without validation (storage hydration).
func Reconstruct(id string, f Fields, createdAt, updatedAt time.Time) User {
	return User{
		id:        id,
		username:  f.Username,
		email:     f.Email,
		fullName:  f.FullName,
		bio:       f.Bio,
		isActive:  f.IsActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the document identifier.
func (u *User) ID() string { return u.id }

// Username returns the login name.
func (u *User) Username() string { return u.username }

// Email returns the email address.
func (u *User) Email() string { return u.email }

// FullName returns the display name.
func (u *User) FullName() string { return u.fullName }

// Bio returns the free-text biography.
func (u *User) Bio() string { return u.bio }

// IsActive reports whether the account is active.
func (u *User) IsActive() bool { return u.isActive }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last save timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Fields returns the user-supplied attributes.
func (u *User) Fields() Fields {
	return Fields{
		Username: u.username,
		Email:    u.email,
		FullName: u.fullName,
		Bio:      u.bio,
		IsActive: u.isActive,
	}
}

// WithID returns a copy carrying the given identifier.
func (u User) WithID(id string) User {
	u.id = id
	return u
}

// Stamp returns a copy prepared for saving at now.
func (u User) Stamp(now time.Time) User {
	now = now.UTC()
	if u.createdAt.IsZero() {
		u.createdAt = now
	}
	u.updatedAt = now
	return u
}
