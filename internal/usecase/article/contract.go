package article

import (
	"context"

	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
	"github.com/kailas-cloud/esdocs/internal/domain/search/result"
)

// Repository defines the storage contract for articles.
type Repository interface {
	Create(ctx context.Context, a domart.Article) error
	Get(ctx context.Context, id string) (domart.Article, error)
	Save(ctx context.Context, a domart.Article) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, req request.Request) (result.Page, error)
}
