package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/esdocs/internal/db"
)

// Index stores source under id, replacing any existing document.
func (s *Store) Index(ctx context.Context, index, id string, source []byte) (err error) {
	defer s.track(db.OpIndex, time.Now(), &err)

	res, err := s.client.Index(
		index,
		bytes.NewReader(source),
		s.client.Index.WithDocumentID(id),
		s.client.Index.WithRefresh(string(s.refresh)),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return &db.Error{Op: db.OpIndex, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return parseError(db.OpIndex, res)
	}
	return nil
}

// Get returns the _source of a document.
func (s *Store) Get(ctx context.Context, index, id string) (_ []byte, err error) {
	defer s.track(db.OpGet, time.Now(), &err)

	res, err := s.client.Get(index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, parseError(db.OpGet, res)
	}

	var body struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &db.Error{Op: db.OpGet, Status: res.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	if !body.Found {
		return nil, &db.Error{Op: db.OpGet, Status: res.StatusCode, Err: db.ErrDocumentNotFound}
	}
	return body.Source, nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, index, id string) (err error) {
	defer s.track(db.OpDelete, time.Now(), &err)

	res, err := s.client.Delete(
		index,
		id,
		s.client.Delete.WithRefresh(string(s.refresh)),
		s.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return parseError(db.OpDelete, res)
	}
	return nil
}
