package esdocs

import (
	"context"
	"fmt"
	"time"

	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
	userpatch "github.com/kailas-cloud/esdocs/internal/domain/user/patch"
)

// UserService manages users.
type UserService struct {
	svc userUseCase
	obs *observer
}

// Create validates and stores a new user under a generated ID.
func (s *UserService) Create(ctx context.Context, in UserInput) (_ User, err error) {
	start := time.Now()
	var id string
	defer func() { s.obs.observe(ctx, "user.create", id, start, err) }()

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	u, err := domuser.New(domuser.Fields{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Bio:      in.Bio,
		IsActive: active,
	})
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	created, err := s.svc.Create(ctx, u)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	id = created.ID()
	return userFromDomain(&created), nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (_ User, err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "user.get", id, start, err) }()

	u, err := s.svc.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return userFromDomain(&u), nil
}

// Update applies a partial update and returns the stored result.
func (s *UserService) Update(ctx context.Context, id string, p UserPatch) (_ User, err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "user.update", id, start, err) }()

	updated, err := s.svc.Update(ctx, id, userpatch.New(p.Username, p.Email, p.FullName, p.Bio, p.IsActive))
	if err != nil {
		return User{}, fmt.Errorf("update user %s: %w", id, err)
	}
	return userFromDomain(&updated), nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "user.delete", id, start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

func userFromDomain(u *domuser.User) User {
	return User{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		FullName:  u.FullName(),
		Bio:       u.Bio(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
