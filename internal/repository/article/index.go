package article

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/esdocs/internal/db"
)

const analyzer = "standard"

func buildIndex(name string, shards, replicas int) (*db.IndexDefinition, error) {
	return db.NewIndex(name).
		Shards(shards).
		Replicas(replicas).
		Text(fieldTitle, analyzer).
		Text(fieldContent, analyzer).
		Keyword(fieldAuthor).
		Keyword(fieldCategory).
		Keyword(fieldTags).
		Integer(fieldViews).
		Float(fieldRating).
		Date(fieldCreatedAt).
		Date(fieldUpdatedAt).
		Build()
}

// EnsureIndex creates the articles index with its mapping when absent.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.index, err)
	}
	if exists {
		return nil
	}

	def, err := buildIndex(r.index, r.settings.Shards, r.settings.Replicas)
	if err != nil {
		return fmt.Errorf("build index %s: %w", r.index, err)
	}
	// ErrIndexExists: a concurrent start-up created it first.
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.index, err)
	}
	return nil
}

// DropIndex deletes the articles index. A missing index is not an error.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DeleteIndex(ctx, r.index); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.index, backendErr(err))
	}
	return nil
}

// Count returns the number of stored articles, zero when the index is missing.
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
