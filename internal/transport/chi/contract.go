package chi

import (
	"context"

	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	artpatch "github.com/kailas-cloud/esdocs/internal/domain/article/patch"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
	"github.com/kailas-cloud/esdocs/internal/domain/search/result"
	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
	userpatch "github.com/kailas-cloud/esdocs/internal/domain/user/patch"
	healthuc "github.com/kailas-cloud/esdocs/internal/usecase/health"
)

// ArticleService is the article usecase consumed by the handlers.
type ArticleService interface {
	Create(ctx context.Context, a domart.Article) (domart.Article, error)
	Get(ctx context.Context, id string) (domart.Article, error)
	Search(ctx context.Context, req request.Request) (result.Page, error)
	Update(ctx context.Context, id string, p artpatch.Patch) (domart.Article, error)
	Delete(ctx context.Context, id string) error
}

// UserService is the user usecase consumed by the handlers.
type UserService interface {
	Create(ctx context.Context, u domuser.User) (domuser.User, error)
	Get(ctx context.Context, id string) (domuser.User, error)
	Update(ctx context.Context, id string, p userpatch.Patch) (domuser.User, error)
	Delete(ctx context.Context, id string) error
}

// HealthService aggregates component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
