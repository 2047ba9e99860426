package article

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	"github.com/kailas-cloud/esdocs/internal/domain/article/patch"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
	"github.com/kailas-cloud/esdocs/internal/domain/search/result"
)

// Service handles article CRUD and search.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// New creates an article service with a wall clock and UUIDv4 identifiers.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithIDGenerator replaces the identifier source.
func (s *Service) WithIDGenerator(newID func() string) *Service {
	if newID != nil {
		s.newID = newID
	}
	return s
}

// Create assigns an ID and timestamps to a validated article and stores it.
func (s *Service) Create(ctx context.Context, a domart.Article) (domart.Article, error) {
	a = a.WithID(s.newID()).Stamp(s.now())
	if err := s.repo.Create(ctx, a); err != nil {
		return domart.Article{}, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// Get retrieves an article by ID.
func (s *Service) Get(ctx context.Context, id string) (domart.Article, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return domart.Article{}, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// Search returns one page of matching articles.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Page, error) {
	page, err := s.repo.Search(ctx, req)
	if err != nil {
		return result.Page{}, fmt.Errorf("search articles: %w", err)
	}
	return page, nil
}

// Update applies a partial update. created_at is kept, updated_at refreshed.
func (s *Service) Update(ctx context.Context, id string, p patch.Patch) (domart.Article, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domart.Article{}, fmt.Errorf("get article: %w", err)
	}

	updated, err := p.Apply(current)
	if err != nil {
		return domart.Article{}, err
	}
	updated = updated.Stamp(s.now())

	if err := s.repo.Save(ctx, updated); err != nil {
		return domart.Article{}, fmt.Errorf("save article: %w", err)
	}
	return updated, nil
}

// Delete removes an article.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
