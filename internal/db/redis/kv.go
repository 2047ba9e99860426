package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/esdocs/internal/db"
)

const scanBatch = 500

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.B().Get().Key(key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpCacheGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores a value with an expiration. A non-positive ttl stores without expiry.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Ex(ttl).Build()
	} else {
		cmd = s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpCacheSet, Err: err}
	}
	return nil
}

// Del removes keys. Missing keys are ignored.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	cmd := s.client.B().Del().Key(keys...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpCacheDel, Err: err}
	}
	return nil
}

// SetIfAbsent stores a value only when the key does not exist (SET NX).
// It reports whether the value was written.
func (s *Store) SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Nx().Ex(ttl).Build()
	} else {
		cmd = s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Nx().Build()
	}
	err := s.client.Do(ctx, cmd).Error()
	if rueidis.IsRedisNil(err) {
		return false, nil
	}
	if err != nil {
		return false, &db.Error{Op: db.OpCacheSet, Err: err}
	}
	return true, nil
}

// DelPrefix removes every key starting with prefix and returns how many were found.
// Each node is scanned; keys are deleted one command each so cluster slots never mix.
func (s *Store) DelPrefix(ctx context.Context, prefix string) (int, error) {
	pattern := escapeGlob(prefix) + "*"
	removed := 0
	for addr, node := range s.client.Nodes() {
		var cursor uint64
		for {
			cmd := node.B().Scan().Cursor(cursor).Match(pattern).Count(scanBatch).Build()
			entry, err := node.Do(ctx, cmd).AsScanEntry()
			if err != nil {
				return removed, &db.Error{Op: db.OpCacheDel, Err: fmt.Errorf("scan %s: %w", addr, err)}
			}
			if len(entry.Elements) > 0 {
				dels := make(rueidis.Commands, 0, len(entry.Elements))
				for _, key := range entry.Elements {
					dels = append(dels, s.client.B().Del().Key(key).Build())
				}
				for _, res := range s.client.DoMulti(ctx, dels...) {
					if err := res.Error(); err != nil {
						return removed, &db.Error{Op: db.OpCacheDel, Err: err}
					}
				}
				removed += len(entry.Elements)
			}
			cursor = entry.Cursor
			if cursor == 0 {
				break
			}
		}
	}
	return removed, nil
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
