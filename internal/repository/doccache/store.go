package doccache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esdocs/internal/db"
	"github.com/kailas-cloud/esdocs/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "doc:"

// tombstoneTTL is how long a write blocks read-through fills of its key.
const tombstoneTTL = 5 * time.Second

// kv is the consumer interface for the cache backend (ISP).
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	DelPrefix(ctx context.Context, prefix string) (int, error)
}

// Store is a read-through cache over a db.Store for by-ID reads.
//
// Writes and deletes go to the backend first, then replace the cached copy
// with an empty tombstone that lives for tombstoneTTL. Fills use SET NX, so a
// Get that read the old source before a concurrent write cannot re-cache it
// while the tombstone is live. A fill delayed past tombstoneTTL can still
// store stale data until the regular TTL expires.
// Dropping an index purges every cached document of that index.
// Cache failures are logged and never fail the call.
type Store struct {
	db.Store
	cache      kv
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New wraps backend with a cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(backend db.Store, cache kv, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		Store:      backend,
		cache:      cache,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached source or reads it from the backend and caches it.
func (s *Store) Get(ctx context.Context, index, id string) ([]byte, error) {
	key := cacheKey(index, id)

	if data, ok := s.getFromCache(ctx, key); ok {
		s.incCache("hit")
		return data, nil
	}
	s.incCache("miss")

	data, err := s.Store.Get(ctx, index, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.cache.SetIfAbsent(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("Failed to cache document", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

// Index writes through to the backend and drops the cached copy.
func (s *Store) Index(ctx context.Context, index, id string, source []byte) error {
	if err := s.Store.Index(ctx, index, id, source); err != nil {
		return err
	}
	s.invalidate(ctx, index, id)
	return nil
}

// Delete removes the document from the backend and the cache.
func (s *Store) Delete(ctx context.Context, index, id string) error {
	err := s.Store.Delete(ctx, index, id)
	s.invalidate(ctx, index, id)
	return err
}

// DeleteIndex drops the index and purges its cached documents.
func (s *Store) DeleteIndex(ctx context.Context, name string) error {
	err := s.Store.DeleteIndex(ctx, name)
	prefix := cacheKeyPrefix + name + ":"
	n, perr := s.cache.DelPrefix(ctx, prefix)
	if perr != nil {
		s.logger.Warn("Failed to purge cached documents", zap.String("prefix", prefix), zap.Error(perr))
	} else if n > 0 {
		s.logger.Info("Purged cached documents", zap.String("index", name), zap.Int("keys", n))
	}
	return err
}

func (s *Store) getFromCache(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn("Failed to get cached document", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, len(data) > 0
}

func (s *Store) invalidate(ctx context.Context, index, id string) {
	key := cacheKey(index, id)
	if err := s.cache.SetWithTTL(ctx, key, nil, tombstoneTTL); err != nil {
		s.logger.Warn("Failed to invalidate cached document", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) incCache(result string) {
	if s.cacheTotal != nil {
		s.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(index, id string) string {
	return cacheKeyPrefix + index + ":" + id
}
