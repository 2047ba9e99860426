package patch

import (
	"fmt"

	"github.com/kailas-cloud/esdocs/internal/domain/article"
)

// Patch is a partial article update. Nil fields are unchanged.
// An empty patch is valid: saving it only refreshes updated_at.
type Patch struct {
	title    *string
	content  *string
	author   *string
	category *string
	tags     *[]string
	views    *int
	rating   *float64
}

// Fields lists the optional values of a Patch.
type Fields struct {
	Title    *string
	Content  *string
	Author   *string
	Category *string
	Tags     *[]string
	Views    *int
	Rating   *float64
}

// New creates a Patch. Field values are validated when applied.
func New(f Fields) Patch {
	return Patch{
		title:    f.Title,
		content:  f.Content,
		author:   f.Author,
		category: f.Category,
		tags:     f.Tags,
		views:    f.Views,
		rating:   f.Rating,
	}
}

// IsEmpty reports whether the patch changes no field.
func (p Patch) IsEmpty() bool {
	return p.title == nil && p.content == nil && p.author == nil && p.category == nil &&
		p.tags == nil && p.views == nil && p.rating == nil
}

// Apply merges the patch into a and re-validates the result.
// ID and timestamps are carried over unchanged.
func (p Patch) Apply(a article.Article) (article.Article, error) {
	f := a.Fields()
	if p.title != nil {
		f.Title = *p.title
	}
	if p.content != nil {
		f.Content = *p.content
	}
	if p.author != nil {
		f.Author = *p.author
	}
	if p.category != nil {
		f.Category = *p.category
	}
	if p.tags != nil {
		f.Tags = *p.tags
	}
	if p.views != nil {
		f.Views = *p.views
	}
	if p.rating != nil {
		f.Rating = *p.rating
	}

	updated, err := article.New(f)
	if err != nil {
		return article.Article{}, fmt.Errorf("apply patch: %w", err)
	}
	return article.Reconstruct(a.ID(), updated.Fields(), a.CreatedAt(), a.UpdatedAt()), nil
}
