package health

import (
	"context"

	"github.com/kailas-cloud/esdocs/internal/db"
)

// ClusterChecker reports search cluster health.
type ClusterChecker interface {
	ClusterHealth(ctx context.Context) (db.ClusterStatus, error)
}

// CachePinger checks cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
