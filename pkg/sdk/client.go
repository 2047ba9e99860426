package esdocs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esdocs/internal/db"
	dbElastic "github.com/kailas-cloud/esdocs/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/esdocs/internal/db/redis"
	"github.com/kailas-cloud/esdocs/internal/domain"
	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
	artpatch "github.com/kailas-cloud/esdocs/internal/domain/article/patch"
	"github.com/kailas-cloud/esdocs/internal/domain/search/request"
	"github.com/kailas-cloud/esdocs/internal/domain/search/result"
	domuser "github.com/kailas-cloud/esdocs/internal/domain/user"
	userpatch "github.com/kailas-cloud/esdocs/internal/domain/user/patch"
	articlerepo "github.com/kailas-cloud/esdocs/internal/repository/article"
	"github.com/kailas-cloud/esdocs/internal/repository/doccache"
	userrepo "github.com/kailas-cloud/esdocs/internal/repository/user"
	articleuc "github.com/kailas-cloud/esdocs/internal/usecase/article"
	bootstrapuc "github.com/kailas-cloud/esdocs/internal/usecase/bootstrap"
	healthuc "github.com/kailas-cloud/esdocs/internal/usecase/health"
	useruc "github.com/kailas-cloud/esdocs/internal/usecase/user"
)

const (
	defaultIndexPrefix      = "app"
	defaultShards           = 1
	defaultTimeout          = 20 * time.Second
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = 5 * time.Minute
	defaultMaxRetries       = 10
)

// Internal interfaces for substitution in tests.
type articleUseCase interface {
	Create(ctx context.Context, a domart.Article) (domart.Article, error)
	Get(ctx context.Context, id string) (domart.Article, error)
	Search(ctx context.Context, req request.Request) (result.Page, error)
	Update(ctx context.Context, id string, p artpatch.Patch) (domart.Article, error)
	Delete(ctx context.Context, id string) error
}

type userUseCase interface {
	Create(ctx context.Context, u domuser.User) (domuser.User, error)
	Get(ctx context.Context, id string) (domuser.User, error)
	Update(ctx context.Context, id string, p userpatch.Patch) (domuser.User, error)
	Delete(ctx context.Context, id string) error
}

type indexAdmin interface {
	EnsureIndices(ctx context.Context) error
	DropIndices(ctx context.Context) error
	Counts(ctx context.Context) (map[string]int64, error)
}

type closer interface {
	Close()
}

// Client is the esdocs SDK entry point.
type Client struct {
	store     db.Store
	cache     closer
	articles  articleUseCase
	users     userUseCase
	healthSvc healthUseCase
	indices   indexAdmin
	obs       *observer
}

// New creates a Client, waits for the cluster and ensures both indices exist.
// The provided context bounds the start-up checks.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout:     defaultTimeout,
		refresh:     RefreshNone,
		indexPrefix: defaultIndexPrefix,
		shards:      defaultShards,
		readiness:   defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addresses) == 0 {
		return nil, errors.New("esdocs: elasticsearch address required (use WithElasticsearch)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	es, err := dbElastic.NewStore(dbElastic.Config{
		Addresses:      cfg.addresses,
		Username:       cfg.username,
		Password:       cfg.password,
		Timeout:        cfg.timeout,
		MaxRetries:     defaultMaxRetries,
		RetryOnTimeout: true,
		Refresh:        db.Refresh(cfg.refresh),
		Transport:      cfg.transport,
	})
	if err != nil {
		return nil, fmt.Errorf("esdocs: create elasticsearch store: %w", err)
	}
	if err := es.WaitForReady(ctx, cfg.readiness); err != nil {
		es.Close()
		return nil, fmt.Errorf("esdocs: elasticsearch not ready: %w", err)
	}

	c := &Client{store: es, obs: obs}
	var store db.Store = es
	var cachePinger healthuc.CachePinger
	if len(cfg.cacheAddrs) > 0 {
		kv, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			es.Close()
			return nil, fmt.Errorf("esdocs: create cache store: %w", err)
		}
		if err := kv.WaitForReady(ctx, cfg.readiness); err != nil {
			kv.Close()
			es.Close()
			return nil, fmt.Errorf("esdocs: cache not ready: %w", err)
		}
		ttl := cfg.cacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		store = doccache.New(es, kv, ttl, nil, zap.NewNop())
		cachePinger = kv
		c.cache = kv
	}

	settings := domain.IndexSettings{Shards: cfg.shards, Replicas: cfg.replicas}
	articleRepo := articlerepo.New(store, cfg.indexPrefix, settings)
	userRepo := userrepo.New(store, cfg.indexPrefix, settings)

	c.indices = bootstrapuc.New(articleRepo, userRepo)
	if err := c.indices.EnsureIndices(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("esdocs: ensure indices: %w", err)
	}

	c.articles = articleuc.New(articleRepo)
	c.users = useruc.New(userRepo)
	c.healthSvc = healthuc.New(es, cachePinger)
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cluster connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "ping", "", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Articles returns the article service.
func (c *Client) Articles() *ArticleService {
	return &ArticleService{svc: c.articles, obs: c.obs}
}

// Users returns the user service.
func (c *Client) Users() *UserService {
	return &UserService{svc: c.users, obs: c.obs}
}
