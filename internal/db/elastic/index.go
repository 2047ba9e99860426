package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kailas-cloud/esdocs/internal/db"
)

// CreateIndex creates an index with the given settings and mappings.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) (err error) {
	defer s.track(db.OpIndicesCreate, time.Now(), &err)

	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid index definition: %w", err)
	}

	body, err := json.Marshal(def.Body())
	if err != nil {
		return fmt.Errorf("marshal index body: %w", err)
	}

	res, err := s.client.Indices.Create(
		def.Name,
		s.client.Indices.Create.WithBody(bytes.NewReader(body)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return &db.Error{Op: db.OpIndicesCreate, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return parseError(db.OpIndicesCreate, res)
	}
	return nil
}

// DeleteIndex drops an index with all of its documents.
func (s *Store) DeleteIndex(ctx context.Context, name string) (err error) {
	defer s.track(db.OpIndicesDelete, time.Now(), &err)

	res, err := s.client.Indices.Delete(
		[]string{name},
		s.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return &db.Error{Op: db.OpIndicesDelete, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return parseError(db.OpIndicesDelete, res)
	}
	return nil
}

// IndexExists reports whether the index exists.
func (s *Store) IndexExists(ctx context.Context, name string) (_ bool, err error) {
	defer s.track(db.OpIndicesExists, time.Now(), &err)

	res, err := s.client.Indices.Exists(
		[]string{name},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, &db.Error{Op: db.OpIndicesExists, Err: err}
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, parseError(db.OpIndicesExists, res)
	}
}
