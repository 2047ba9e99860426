package user

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/esdocs/internal/db"
	"github.com/kailas-cloud/esdocs/internal/domain"
	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	indexFn       func(ctx context.Context, index, id string, source []byte) error
	getFn         func(ctx context.Context, index, id string) ([]byte, error)
	deleteFn      func(ctx context.Context, index, id string) error
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	deleteIndexFn func(ctx context.Context, name string) error
	countFn       func(ctx context.Context, index string, q *db.SearchQuery) (int64, error)
}

func (m *mockStore) Index(ctx context.Context, index, id string, source []byte) error {
	if m.indexFn != nil {
		return m.indexFn(ctx, index, id, source)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, index, id string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, index, id)
	}
	return nil, db.ErrDocumentNotFound
}

func (m *mockStore) Delete(ctx context.Context, index, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, id)
	}
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) DeleteIndex(ctx context.Context, name string) error {
	if m.deleteIndexFn != nil {
		return m.deleteIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) Count(ctx context.Context, index string, q *db.SearchQuery) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, index, q)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "app", domain.DefaultIndexSettings()), ms
}

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testUser(t *testing.T, active bool) domuser.User {
	t.Helper()
	return domuser.Reconstruct("u1", domuser.Fields{
		Username: "ann.lee",
		Email:    "ann@example.com",
		FullName: "Ann Lee",
		Bio:      "gopher",
		IsActive: active,
	}, testTime, testTime)
}
