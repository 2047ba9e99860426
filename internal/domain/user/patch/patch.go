package patch

import (
	"fmt"

	"github.com/kailas-cloud/esdocs/internal/domain/user"
)

// Patch is a partial user update. Nil fields are unchanged.
type Patch struct {
	username *string
	email    *string
	fullName *string
	bio      *string
	isActive *bool
}

// New creates a Patch. Values are validated when applied.
func New(username, email, fullName, bio *string, isActive *bool) Patch {
	return Patch{username: username, email: email, fullName: fullName, bio: bio, isActive: isActive}
}

// Apply merges the patch into u and re-validates the result.
func (p Patch) Apply(u user.User) (user.User, error) {
	f := u.Fields()
	if p.username != nil {
		f.Username = *p.username
	}
	if p.email != nil {
		f.Email = *p.email
	}
	if p.fullName != nil {
		f.FullName = *p.fullName
	}
	if p.bio != nil {
		f.Bio = *p.bio
	}
	if p.isActive != nil {
		f.IsActive = *p.isActive
	}

	if _, err := user.New(f); err != nil {
		return user.User{}, fmt.Errorf("apply patch: %w", err)
	}
	return user.Reconstruct(u.ID(), f, u.CreatedAt(), u.UpdatedAt()), nil
}
