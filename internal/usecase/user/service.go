package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
	"github.com/kailas-cloud/esdocs/internal/domain/user/patch"
)

// Service handles user CRUD.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// New creates a user service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithIDGenerator replaces the identifier source.
func (s *Service) WithIDGenerator(newID func() string) *Service {
	if newID != nil {
		s.newID = newID
	}
	return s
}

// Create assigns an ID and timestamps and stores the user.
func (s *Service) Create(ctx context.Context, u domuser.User) (domuser.User, error) {
	u = u.WithID(s.newID()).Stamp(s.now())
	if err := s.repo.Create(ctx, u); err != nil {
		return domuser.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id string) (domuser.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domuser.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, p patch.Patch) (domuser.User, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domuser.User{}, fmt.Errorf("get user: %w", err)
	}

	updated, err := p.Apply(current)
	if err != nil {
		return domuser.User{}, err
	}
	updated = updated.Stamp(s.now())

	if err := s.repo.Save(ctx, updated); err != nil {
		return domuser.User{}, fmt.Errorf("save user: %w", err)
	}
	return updated, nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
