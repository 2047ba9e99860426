package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/esdocs/internal/domain"
	"github.com/kailas-cloud/esdocs/internal/domain/article"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 10
	MaxLimit       = 100
	// MaxResultWindow mirrors the Elasticsearch index.max_result_window default.
	MaxResultWindow = 10000
)

// Request is a validated article search.
type Request struct {
	query    string
	category string
	tags     []string
	limit    int
	offset   int
}

// New validates search parameters. A zero limit means DefaultLimit.
// Limit must be within 1..MaxLimit, offset non-negative and offset+limit within MaxResultWindow.
func New(query, category string, tags []string, limit, offset int) (Request, error) {
	query = strings.TrimSpace(query)
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrValidation)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Request{}, fmt.Errorf("limit must be between 1 and %d: %w", MaxLimit, domain.ErrValidation)
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("offset must be non-negative: %w", domain.ErrValidation)
	}
	if offset > MaxResultWindow-limit {
		return Request{}, fmt.Errorf(
			"offset + limit must not exceed %d: %w", MaxResultWindow, domain.ErrValidation,
		)
	}

	var normalized []string
	if len(tags) > 0 {
		normalized = article.NormalizeTags(tags)
	}

	return Request{
		query:    query,
		category: strings.TrimSpace(category),
		tags:     normalized,
		limit:    limit,
		offset:   offset,
	}, nil
}

// Query returns the full-text query, empty when not set.
func (r *Request) Query() string { return r.query }

// Category returns the category filter, empty when not set.
func (r *Request) Category() string { return r.category }

// Tags returns the tag filter (any-of), nil when not set.
func (r *Request) Tags() []string { return r.tags }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of hits to skip.
func (r *Request) Offset() int { return r.offset }

// HasCriteria reports whether any query or filter was supplied.
func (r *Request) HasCriteria() bool {
	return r.query != "" || r.category != "" || len(r.tags) > 0
}
