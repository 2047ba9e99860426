package article

import (
	"encoding/json"
	"fmt"
	"time"

	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
)

// Stored field names.
const (
	fieldTitle     = "title"
	fieldContent   = "content"
	fieldAuthor    = "author"
	fieldCategory  = "category"
	fieldTags      = "tags"
	fieldViews     = "views"
	fieldRating    = "rating"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// articleDoc is the _source shape of an article. The ID lives in _id only.
type articleDoc struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Views     int       `json:"views"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func marshalArticle(a domart.Article) ([]byte, error) {
	tags := a.Tags()
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(articleDoc{
		Title:     a.Title(),
		Content:   a.Content(),
		Author:    a.Author(),
		Category:  a.Category(),
		Tags:      tags,
		Views:     a.Views(),
		Rating:    a.Rating(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal article: %w", err)
	}
	return data, nil
}

func unmarshalArticle(id string, src []byte) (domart.Article, error) {
	var doc articleDoc
	if err := json.Unmarshal(src, &doc); err != nil {
		return domart.Article{}, fmt.Errorf("unmarshal article %s: %w", id, err)
	}
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return domart.Reconstruct(id, domart.Fields{
		Title:    doc.Title,
		Content:  doc.Content,
		Author:   doc.Author,
		Category: doc.Category,
		Tags:     tags,
		Views:    doc.Views,
		Rating:   doc.Rating,
	}, doc.CreatedAt, doc.UpdatedAt), nil
}
