package doccache

import (
	"context"
	"strings"
	"time"

	"github.com/kailas-cloud/esdocs/internal/db"
)

// mockBackend overrides the by-ID calls of db.Store. Other methods are not used.
type mockBackend struct {
	db.Store
	getFn    func(ctx context.Context, index, id string) ([]byte, error)
	indexFn  func(ctx context.Context, index, id string, source []byte) error
	deleteFn func(ctx context.Context, index, id string) error
	dropFn   func(ctx context.Context, name string) error
	gets     int
}

func (m *mockBackend) Get(ctx context.Context, index, id string) ([]byte, error) {
	m.gets++
	if m.getFn != nil {
		return m.getFn(ctx, index, id)
	}
	return nil, db.ErrDocumentNotFound
}

func (m *mockBackend) Index(ctx context.Context, index, id string, source []byte) error {
	if m.indexFn != nil {
		return m.indexFn(ctx, index, id, source)
	}
	return nil
}

func (m *mockBackend) Delete(ctx context.Context, index, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, id)
	}
	return nil
}

func (m *mockBackend) DeleteIndex(ctx context.Context, name string) error {
	if m.dropFn != nil {
		return m.dropFn(ctx, name)
	}
	return nil
}

// memKV is an in-memory kv with optional forced errors.
type memKV struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
	delErr error
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memKV) SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if m.setErr != nil {
		return false, m.setErr
	}
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	return true, m.SetWithTTL(ctx, key, value, ttl)
}

func (m *memKV) DelPrefix(_ context.Context, prefix string) (int, error) {
	if m.delErr != nil {
		return 0, m.delErr
	}
	n := 0
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}
