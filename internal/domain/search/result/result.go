package result

import "github.com/kailas-cloud/esdocs/internal/domain/article"

// Page is one page of article search hits in relevance order.
type Page struct {
	items []article.Article
	total int64
}

// New creates a search page.
func New(items []article.Article, total int64) Page {
	return Page{items: items, total: total}
}

// Items returns the hits of this page.
func (p *Page) Items() []article.Article { return p.items }

// Total returns the total number of matching documents.
func (p *Page) Total() int64 { return p.total }

// Len returns the number of hits on this page.
func (p *Page) Len() int { return len(p.items) }
