package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Store interface {
	Pinger
	HealthChecker
	IndexManager
	DocumentStore
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClusterStatus is the traffic-light health of a search cluster.
type ClusterStatus string

const (
	// ClusterGreen means all shards are allocated.
	ClusterGreen ClusterStatus = "green"
	// ClusterYellow means primaries are allocated but some replicas are not.
	ClusterYellow ClusterStatus = "yellow"
	// ClusterRed means at least one primary shard is unallocated.
	ClusterRed ClusterStatus = "red"
)

// Serving reports whether the cluster can serve reads and writes.
func (s ClusterStatus) Serving() bool {
	return s == ClusterGreen || s == ClusterYellow
}

// HealthChecker reports cluster health.
type HealthChecker interface {
	ClusterHealth(ctx context.Context) (ClusterStatus, error)
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DeleteIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Refresh controls when a write becomes visible to search.
type Refresh string

const (
	// RefreshNone returns immediately; the write shows up after the next periodic refresh.
	RefreshNone Refresh = "false"
	// RefreshWaitFor blocks until the write is visible to search.
	RefreshWaitFor Refresh = "wait_for"
	// RefreshImmediate forces a refresh of the affected shards.
	RefreshImmediate Refresh = "true"
)

// DocumentStore provides by-ID document operations on raw JSON sources.
type DocumentStore interface {
	Index(ctx context.Context, index, id string, source []byte) error
	Get(ctx context.Context, index, id string) ([]byte, error)
	Delete(ctx context.Context, index, id string) error
}

// Searcher provides query operations.
type Searcher interface {
	Search(ctx context.Context, index string, q *SearchQuery) (*SearchResult, error)
	Count(ctx context.Context, index string, q *SearchQuery) (int64, error)
}

// KVStore is a byte-value cache with per-key expiry.
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	DelPrefix(ctx context.Context, prefix string) (int, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
