package article

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/esdocs/internal/domain"
)

// Field limits.
const (
	MaxTitleLength = 512
	MaxContentSize = 163840 // 160KB
	MaxTags        = 64
	MaxTagLength   = 128
)

// Fields carries the user-supplied article attributes.
type Fields struct {
	Title    string
	Content  string
	Author   string
	Category string
	Tags     []string
	Views    int
	Rating   float64
}

// Article is the article aggregate (immutable value object).
type Article struct {
	id        string
	title     string
	content   string
	author    string
	category  string
	tags      []string
	views     int
	rating    float64
	createdAt time.Time
	updatedAt time.Time
}

// New validates and creates an Article without an ID or timestamps.
// Tags are trimmed, empty ones dropped and duplicates removed (first occurrence wins).
func New(f Fields) (Article, error) {
	if err := validate(f); err != nil {
		return Article{}, err
	}
	return Article{
		title:    f.Title,
		content:  f.Content,
		author:   f.Author,
		category: f.Category,
		tags:     NormalizeTags(f.Tags),
		views:    f.Views,
		rating:   f.Rating,
	}, nil
}

// Reconstruct creates an Article without validation (storage hydration).
func Reconstruct(id string, f Fields, createdAt, updatedAt time.Time) Article {
	return Article{
		id:        id,
		title:     f.Title,
		content:   f.Content,
		author:    f.Author,
		category:  f.Category,
		tags:      f.Tags,
		views:     f.Views,
		rating:    f.Rating,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func validate(f Fields) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if len(f.Title) > MaxTitleLength {
		return fmt.Errorf("title too long (max %d chars): %w", MaxTitleLength, domain.ErrValidation)
	}
	if f.Content == "" {
		return fmt.Errorf("content is required: %w", domain.ErrValidation)
	}
	if len(f.Content) > MaxContentSize {
		return fmt.Errorf("content too large (max %d bytes): %w", MaxContentSize, domain.ErrValidation)
	}
	if strings.TrimSpace(f.Author) == "" {
		return fmt.Errorf("author is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(f.Category) == "" {
		return fmt.Errorf("category is required: %w", domain.ErrValidation)
	}
	if f.Views < 0 {
		return fmt.Errorf("views must be non-negative: %w", domain.ErrValidation)
	}
	if f.Rating < 0 {
		return fmt.Errorf("rating must be non-negative: %w", domain.ErrValidation)
	}
	return validateTags(f.Tags)
}

func validateTags(tags []string) error {
	if len(tags) > MaxTags {
		return fmt.Errorf("too many tags (max %d): %w", MaxTags, domain.ErrValidation)
	}
	for _, t := range tags {
		if len(t) > MaxTagLength {
			return fmt.Errorf("tag %q too long (max %d chars): %w", t, MaxTagLength, domain.ErrValidation)
		}
	}
	return nil
}

// NormalizeTags trims tags, drops empty ones and removes duplicates preserving order.
// Never returns nil so the stored document always carries an array.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ID returns the document identifier.
func (a *Article) ID() string { return a.id }

// Title returns the article title.
func (a *Article) Title() string { return a.title }

// Content returns the article body.
func (a *Article) Content() string { return a.content }

// Author returns the author keyword.
func (a *Article) Author() string { return a.author }

// Category returns the category keyword.
func (a *Article) Category() string { return a.category }

// Tags returns the tag keywords.
func (a *Article) Tags() []string { return a.tags }

// Views returns the view counter.
func (a *Article) Views() int { return a.views }

// Rating returns the article rating.
func (a *Article) Rating() float64 { return a.rating }

// CreatedAt returns the creation timestamp.
func (a *Article) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last save timestamp.
func (a *Article) UpdatedAt() time.Time { return a.updatedAt }

// Fields returns the user-supplied attributes.
func (a *Article) Fields() Fields {
	return Fields{
		Title:    a.title,
		Content:  a.content,
		Author:   a.author,
		Category: a.category,
		Tags:     a.tags,
		Views:    a.views,
		Rating:   a.rating,
	}
}

// WithID returns a copy carrying the given identifier.
func (a Article) WithID(id string) Article {
	a.id = id
	return a
}

// Stamp returns a copy prepared for saving at now: created_at is set once,
// updated_at on every save.
func (a Article) Stamp(now time.Time) Article {
	now = now.UTC()
	if a.createdAt.IsZero() {
		a.createdAt = now
	}
	a.updatedAt = now
	return a
}
