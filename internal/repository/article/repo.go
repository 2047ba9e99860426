package article

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/esdocs/internal/db"
	"github.com/kailas-cloud/esdocs/internal/domain"
	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
	"github.com/kailas-cloud/esdocs/internal/domain/search/result"
)

// store is the consumer interface for articles (ISP).
type store interface {
	Index(ctx context.Context, index, id string, source []byte) error
	Get(ctx context.Context, index, id string) ([]byte, error)
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, q *db.SearchQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	DeleteIndex(ctx context.Context, name string) error
	Count(ctx context.Context, index string, q *db.SearchQuery) (int64, error)
}

// Repo implements usecase/article.Repository on top of a document store.
type Repo struct {
	store    store
	index    string
	settings domain.IndexSettings
}

// New creates an article repository writing to <prefix>_articles.
func New(s store, prefix string, settings domain.IndexSettings) *Repo {
	return &Repo{
		store:    s,
		index:    domain.IndexName(prefix, domain.KindArticles),
		settings: settings,
	}
}

// IndexName returns the backing index.
func (r *Repo) IndexName() string { return r.index }

// Create stores a new article.
func (r *Repo) Create(ctx context.Context, a domart.Article) error {
	if err := r.put(ctx, a); err != nil {
		return fmt.Errorf("create article %s: %w", a.ID(), backendErr(err))
	}
	return nil
}

// Save re-indexes an existing article in full.
func (r *Repo) Save(ctx context.Context, a domart.Article) error {
	if err := r.put(ctx, a); err != nil {
		return fmt.Errorf("save article %s: %w", a.ID(), backendErr(err))
	}
	return nil
}

func (r *Repo) put(ctx context.Context, a domart.Article) error {
	src, err := marshalArticle(a)
	if err != nil {
		return err
	}
	return r.store.Index(ctx, r.index, a.ID(), src)
}

// Get retrieves an article by ID.
func (r *Repo) Get(ctx context.Context, id string) (domart.Article, error) {
	src, err := r.store.Get(ctx, r.index, id)
	if err != nil {
		if isMissing(err) {
			return domart.Article{}, domain.ErrArticleNotFound
		}
		return domart.Article{}, fmt.Errorf("get article %s: %w", id, backendErr(err))
	}
	return unmarshalArticle(id, src)
}

// Delete removes an article by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, r.index, id); err != nil {
		if isMissing(err) {
			return domain.ErrArticleNotFound
		}
		return fmt.Errorf("delete article %s: %w", id, backendErr(err))
	}
	return nil
}

// Search runs a full-text and filter search. A missing index yields an empty page.
func (r *Repo) Search(ctx context.Context, req request.Request) (result.Page, error) {
	res, err := r.store.Search(ctx, r.index, BuildQuery(req))
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return result.New([]domart.Article{}, 0), nil
		}
		return result.Page{}, fmt.Errorf("search articles: %w", backendErr(err))
	}

	items := make([]domart.Article, 0, len(res.Hits))
	for _, h := range res.Hits {
		a, err := unmarshalArticle(h.ID, h.Source)
		if err != nil {
			return result.Page{}, err
		}
		items = append(items, a)
	}
	return result.New(items, res.Total), nil
}

// BuildQuery translates a search request into the backend query:
// multi_match over title (boosted x2) and content, term on category,
// terms on tags, match_all when no criteria are given.
func BuildQuery(req request.Request) *db.SearchQuery {
	q := db.NewBoolQuery()
	if req.Query() != "" {
		q.Must(db.MultiMatch(req.Query(), db.Boost(fieldTitle, 2), fieldContent))
	}
	if req.Category() != "" {
		q.Filter(db.Term(fieldCategory, req.Category()))
	}
	if len(req.Tags()) > 0 {
		q.Filter(db.Terms(fieldTags, req.Tags()...))
	}

	sq := &db.SearchQuery{
		From:           req.Offset(),
		Size:           req.Limit(),
		TrackTotalHits: true,
	}
	if q.IsEmpty() {
		sq.Query = db.MatchAll()
	} else {
		sq.Query = q
	}
	return sq
}

func isMissing(err error) bool {
	return errors.Is(err, db.ErrDocumentNotFound) || errors.Is(err, db.ErrIndexNotFound)
}

// backendErr marks transport failures as domain.ErrBackendUnavailable.
func backendErr(err error) error {
	if db.IsUnavailable(err) {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	return err
}
