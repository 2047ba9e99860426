package bootstrap

import (
	"context"
	"fmt"
)

// ManagedIndex is a backing index whose lifecycle the service owns.
type ManagedIndex interface {
	EnsureIndex(ctx context.Context) error
	DropIndex(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	IndexName() string
}

// Service prepares storage before traffic is accepted and resets it on request.
type Service struct {
	indices []ManagedIndex
}

// New creates a bootstrap service.
func New(indices ...ManagedIndex) *Service {
	return &Service{indices: indices}
}

// EnsureIndices creates every missing index. Stops on the first failure.
func (s *Service) EnsureIndices(ctx context.Context) error {
	for _, idx := range s.indices {
		if err := idx.EnsureIndex(ctx); err != nil {
			return fmt.Errorf("ensure index %s: %w", idx.IndexName(), err)
		}
	}
	return nil
}

// DropIndices deletes every managed index with its documents.
func (s *Service) DropIndices(ctx context.Context) error {
	for _, idx := range s.indices {
		if err := idx.DropIndex(ctx); err != nil {
			return fmt.Errorf("drop index %s: %w", idx.IndexName(), err)
		}
	}
	return nil
}

// Counts returns the document count per index name.
func (s *Service) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(s.indices))
	for _, idx := range s.indices {
		n, err := idx.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", idx.IndexName(), err)
		}
		counts[idx.IndexName()] = n
	}
	return counts, nil
}

// IndexNames lists the managed indices.
func (s *Service) IndexNames() []string {
	names := make([]string, len(s.indices))
	for i, idx := range s.indices {
		names[i] = idx.IndexName()
	}
	return names
}
