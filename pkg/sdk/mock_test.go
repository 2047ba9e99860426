package esdocs

import (
	"context"

	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	artpatch "github.com/kailas-cloud/esdocs/internal/domain/article/patch"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
	"github.com/kailas-cloud/esdocs/internal/domain/search/result"
	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
	userpatch "github.com/kailas-cloud/esdocs/internal/domain/user/patch"
)

type mockArticleUC struct {
	createFn func(ctx context.Context, a domart.Article) (domart.Article, error)
	getFn    func(ctx context.Context, id string) (domart.Article, error)
	searchFn func(ctx context.Context, req request.Request) (result.Page, error)
	updateFn func(ctx context.Context, id string, p artpatch.Patch) (domart.Article, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockArticleUC) Create(ctx context.Context, a domart.Article) (domart.Article, error) {
	return m.createFn(ctx, a)
}

func (m *mockArticleUC) Get(ctx context.Context, id string) (domart.Article, error) {
	return m.getFn(ctx, id)
}

func (m *mockArticleUC) Search(ctx context.Context, req request.Request) (result.Page, error) {
	return m.searchFn(ctx, req)
}

func (m *mockArticleUC) Update(ctx context.Context, id string, p artpatch.Patch) (domart.Article, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockArticleUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockUserUC struct {
	createFn func(ctx context.Context, u domuser.User) (domuser.User, error)
	getFn    func(ctx context.Context, id string) (domuser.User, error)
	updateFn func(ctx context.Context, id string, p userpatch.Patch) (domuser.User, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockUserUC) Create(ctx context.Context, u domuser.User) (domuser.User, error) {
	return m.createFn(ctx, u)
}

func (m *mockUserUC) Get(ctx context.Context, id string) (domuser.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockUserUC) Update(ctx context.Context, id string, p userpatch.Patch) (domuser.User, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockUserUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
