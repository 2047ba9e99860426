package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/esdocs/internal/db"
	"github.com/kailas-cloud/esdocs/internal/domain"
	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
)

// store is the consumer interface for users (ISP).
type store interface {
	Index(ctx context.Context, index, id string, source []byte) error
	Get(ctx context.Context, index, id string) ([]byte, error)
	Delete(ctx context.Context, index, id string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	DeleteIndex(ctx context.Context, name string) error
	Count(ctx context.Context, index string, q *db.SearchQuery) (int64, error)
}

// Repo implements usecase/user.Repository.
type Repo struct {
	store    store
	index    string
	settings domain.IndexSettings
}

// New creates a user repository writing to <prefix>_users.
func New(s store, prefix string, settings domain.IndexSettings) *Repo {
	return &Repo{
		store:    s,
		index:    domain.IndexName(prefix, domain.KindUsers),
		settings: settings,
	}
}

// IndexName returns the backing index.
func (r *Repo) IndexName() string { return r.index }

// Create stores a new user.
func (r *Repo) Create(ctx context.Context, u domuser.User) error {
	if err := r.put(ctx, u); err != nil {
		return fmt.Errorf("create user %s: %w", u.ID(), backendErr(err))
	}
	return nil
}

// Save re-indexes an existing user.
func (r *Repo) Save(ctx context.Context, u domuser.User) error {
	if err := r.put(ctx, u); err != nil {
		return fmt.Errorf("save user %s: %w", u.ID(), backendErr(err))
	}
	return nil
}

func (r *Repo) put(ctx context.Context, u domuser.User) error {
	src, err := marshalUser(u)
	if err != nil {
		return err
	}
	return r.store.Index(ctx, r.index, u.ID(), src)
}

// Get retrieves a user by ID.
func (r *Repo) Get(ctx context.Context, id string) (domuser.User, error) {
	src, err := r.store.Get(ctx, r.index, id)
	if err != nil {
		if isMissing(err) {
			return domuser.User{}, domain.ErrUserNotFound
		}
		return domuser.User{}, fmt.Errorf("get user %s: %w", id, backendErr(err))
	}
	return unmarshalUser(id, src)
}

// Delete removes a user by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, r.index, id); err != nil {
		if isMissing(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("delete user %s: %w", id, backendErr(err))
	}
	return nil
}

// EnsureIndex creates the users index with its mapping when absent.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.index, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(r.index).
		Shards(r.settings.Shards).
		Replicas(r.settings.Replicas).
		Keyword(fieldUsername).
		Keyword(fieldEmail).
		Text(fieldFullName, "").
		Text(fieldBio, "").
		Keyword(fieldIsActive).
		Date(fieldCreatedAt).
		Date(fieldUpdatedAt).
		Build()
	if err != nil {
		return fmt.Errorf("build index %s: %w", r.index, err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.index, err)
	}
	return nil
}

func isMissing(err error) bool {
	return errors.Is(err, db.ErrDocumentNotFound) || errors.Is(err, db.ErrIndexNotFound)
}

// DropIndex deletes the users index. A missing index is not an error.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DeleteIndex(ctx, r.index); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.index, backendErr(err))
	}
	return nil
}

// Count returns the number of stored users, zero when the index is missing.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	n, err := r.store.Count(ctx, r.index, &db.SearchQuery{})
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("count %s: %w", r.index, backendErr(err))
	}
	return n, nil
}

// backendErr marks transport failures as domain.ErrBackendUnavailable.
func backendErr(err error) error {
	if db.IsUnavailable(err) {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	return err
}
