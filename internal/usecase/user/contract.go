package user

import (
	"context"

	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
)

// Repository defines the storage contract for users.
type Repository interface {
	Create(ctx context.Context, u domuser.User) error
	Get(ctx context.Context, id string) (domuser.User, error)
	Save(ctx context.Context, u domuser.User) error
	Delete(ctx context.Context, id string) error
}
