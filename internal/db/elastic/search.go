package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/esdocs/internal/db"
)

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Score  *float64        `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a paginated query against index.
func (s *Store) Search(ctx context.Context, index string, q *db.SearchQuery) (_ *db.SearchResult, err error) {
	defer s.track(db.OpSearch, time.Now(), &err)

	body, err := json.Marshal(q.Body())
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, parseError(db.OpSearch, res)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Status: res.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}

	result := &db.SearchResult{
		Total: sr.Hits.Total.Value,
		Hits:  make([]db.Hit, 0, len(sr.Hits.Hits)),
	}
	for _, h := range sr.Hits.Hits {
		hit := db.Hit{ID: h.ID, Source: h.Source}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}

// Count returns the number of documents matching the query.
func (s *Store) Count(ctx context.Context, index string, q *db.SearchQuery) (_ int64, err error) {
	defer s.track(db.OpCount, time.Now(), &err)

	body, err := json.Marshal(q.CountBody())
	if err != nil {
		return 0, fmt.Errorf("marshal count body: %w", err)
	}

	res, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(index),
		s.client.Count.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, parseError(db.OpCount, res)
	}

	var cr struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return 0, &db.Error{Op: db.OpCount, Status: res.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return cr.Count, nil
}
