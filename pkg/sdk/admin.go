package esdocs

import (
	"context"
	"fmt"
	"time"
)

// Stats returns the number of stored documents keyed by index name.
func (c *Client) Stats(ctx context.Context) (_ map[string]int64, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "stats", "", start, err) }()

	counts, err := c.indices.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return counts, nil
}

// Reset deletes both indices with all documents and recreates them empty.
// With WithCache, cached documents of both indices are purged as well.
func (c *Client) Reset(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "reset", "", start, err) }()

	if err = c.indices.DropIndices(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err = c.indices.EnsureIndices(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
