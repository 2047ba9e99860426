package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	artpatch "github.com/kailas-cloud/esdocs/internal/domain/article/patch"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
	"github.com/kailas-cloud/esdocs/internal/domain/search/result"
	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
	userpatch "github.com/kailas-cloud/esdocs/internal/domain/user/patch"
	healthuc "github.com/kailas-cloud/esdocs/internal/usecase/health"
)

type mockArticles struct {
	createFn func(ctx context.Context, a domart.Article) (domart.Article, error)
	getFn    func(ctx context.Context, id string) (domart.Article, error)
	searchFn func(ctx context.Context, req request.Request) (result.Page, error)
	updateFn func(ctx context.Context, id string, p artpatch.Patch) (domart.Article, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockArticles) Create(ctx context.Context, a domart.Article) (domart.Article, error) {
	return m.createFn(ctx, a)
}

func (m *mockArticles) Get(ctx context.Context, id string) (domart.Article, error) {
	return m.getFn(ctx, id)
}

func (m *mockArticles) Search(ctx context.Context, req request.Request) (result.Page, error) {
	return m.searchFn(ctx, req)
}

func (m *mockArticles) Update(ctx context.Context, id string, p artpatch.Patch) (domart.Article, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockArticles) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockUsers struct {
	createFn func(ctx context.Context, u domuser.User) (domuser.User, error)
	getFn    func(ctx context.Context, id string) (domuser.User, error)
	updateFn func(ctx context.Context, id string, p userpatch.Patch) (domuser.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockUsers) Create(ctx context.Context, u domuser.User) (domuser.User, error) {
	return m.createFn(ctx, u)
}

func (m *mockUsers) Get(ctx context.Context, id string) (domuser.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockUsers) Update(ctx context.Context, id string, p userpatch.Patch) (domuser.User, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockUsers) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func healthyReport() healthuc.Report {
	return healthuc.Report{
		Status:  healthuc.Healthy,
		Cluster: "green",
		Checks:  map[string]healthuc.CheckResult{"elasticsearch": healthuc.CheckOK},
	}
}

// newTestRouter mounts the server on a chi router the way cmd/esdocs does.
func newTestRouter(t *testing.T, articles *mockArticles, users *mockUsers, health *mockHealth) http.Handler {
	t.Helper()
	if articles == nil {
		articles = &mockArticles{}
	}
	if users == nil {
		users = &mockUsers{}
	}
	if health == nil {
		health = &mockHealth{report: healthyReport()}
	}
	srv := NewServer(articles, users, health, zap.NewNop()).
		WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics\n"))
		}))
	r := chi.NewRouter()
	return HandlerWithOptions(srv, ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: ParamErrorHandler})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
