package esdocs

import (
	"context"
	"fmt"
	"time"

	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	artpatch "github.com/kailas-cloud/esdocs/internal/domain/article/patch"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
)

// ArticleService manages articles.
type ArticleService struct {
	svc articleUseCase
	obs *observer
}

// Create validates and stores a new article under a generated ID.
func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (_ Article, err error) {
	start := time.Now()
	var id string
	defer func() { s.obs.observe(ctx, "article.create", id, start, err) }()

	a, err := domart.New(domart.Fields{
		Title:    in.Title,
		Content:  in.Content,
		Author:   in.Author,
		Category: in.Category,
		Tags:     in.Tags,
		Views:    in.Views,
		Rating:   in.Rating,
	})
	if err != nil {
		return Article{}, fmt.Errorf("create article: %w", err)
	}
	created, err := s.svc.Create(ctx, a)
	if err != nil {
		return Article{}, fmt.Errorf("create article: %w", err)
	}
	id = created.ID()
	return articleFromDomain(&created), nil
}

// Get returns an article by ID.
func (s *ArticleService) Get(ctx context.Context, id string) (_ Article, err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "article.get", id, start, err) }()

	a, err := s.svc.Get(ctx, id)
	if err != nil {
		return Article{}, fmt.Errorf("get article %s: %w", id, err)
	}
	return articleFromDomain(&a), nil
}

// Search runs a full-text query with optional category and tag filters.
func (s *ArticleService) Search(ctx context.Context, q SearchQuery) (_ SearchPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "article.search", "", start, err) }()

	req, err := request.New(q.Query, q.Category, q.Tags, q.Limit, q.Offset)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search articles: %w", err)
	}
	page, err := s.svc.Search(ctx, req)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search articles: %w", err)
	}

	items := page.Items()
	out := SearchPage{Articles: make([]Article, 0, len(items)), Total: page.Total()}
	for i := range items {
		out.Articles = append(out.Articles, articleFromDomain(&items[i]))
	}
	return out, nil
}

// Update applies a partial update and returns the stored result.
func (s *ArticleService) Update(ctx context.Context, id string, p ArticlePatch) (_ Article, err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "article.update", id, start, err) }()

	updated, err := s.svc.Update(ctx, id, artpatch.New(artpatch.Fields{
		Title:    p.Title,
		Content:  p.Content,
		Author:   p.Author,
		Category: p.Category,
		Tags:     p.Tags,
		Views:    p.Views,
		Rating:   p.Rating,
	}))
	if err != nil {
		return Article{}, fmt.Errorf("update article %s: %w", id, err)
	}
	return articleFromDomain(&updated), nil
}

// Delete removes an article.
func (s *ArticleService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "article.delete", id, start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	return nil
}

func articleFromDomain(a *domart.Article) Article {
	tags := a.Tags()
	if tags == nil {
		tags = []string{}
	}
	return Article{
		ID:        a.ID(),
		Title:     a.Title(),
		Content:   a.Content(),
		Author:    a.Author(),
		Category:  a.Category(),
		Tags:      tags,
		Views:     a.Views(),
		Rating:    a.Rating(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}
