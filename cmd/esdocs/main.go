package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esdocs/internal/config"
	"github.com/kailas-cloud/esdocs/internal/db"
	dbElastic "github.com/kailas-cloud/esdocs/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/esdocs/internal/db/redis"
	"github.com/kailas-cloud/esdocs/internal/domain"
	logpkg "github.com/kailas-cloud/esdocs/internal/logger"
	"github.com/kailas-cloud/esdocs/internal/metrics"
	articlerepo "github.com/kailas-cloud/esdocs/internal/repository/article"
	"github.com/kailas-cloud/esdocs/internal/repository/doccache"
	userrepo "github.com/kailas-cloud/esdocs/internal/repository/user"
	chiTransport "github.com/kailas-cloud/esdocs/internal/transport/chi"
	articleuc "github.com/kailas-cloud/esdocs/internal/usecase/article"
	bootstrapuc "github.com/kailas-cloud/esdocs/internal/usecase/bootstrap"
	healthuc "github.com/kailas-cloud/esdocs/internal/usecase/health"
	useruc "github.com/kailas-cloud/esdocs/internal/usecase/user"
	"github.com/kailas-cloud/esdocs/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{Level: cfg.Logging.Level, Component: "api"})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting esdocs API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("es_addrs", cfg.Elasticsearch.Addresses),
		zap.String("index_prefix", cfg.Elasticsearch.IndexPrefix),
		zap.Bool("cache", cfg.Cache.Enabled),
	)

	// Register backend metrics explicitly (no init())
	metrics.RegisterStoreMetrics()

	es, err := dbElastic.NewStore(dbElastic.Config{
		Addresses:      cfg.Elasticsearch.Addresses,
		Username:       cfg.Elasticsearch.Username,
		Password:       cfg.Elasticsearch.Password,
		Timeout:        cfg.Elasticsearch.Timeout(),
		MaxRetries:     cfg.Elasticsearch.MaxRetries,
		RetryOnTimeout: *cfg.Elasticsearch.RetryOnTimeout,
		Refresh:        db.Refresh(cfg.Elasticsearch.Refresh),
		Observer:       metrics.ObserveElastic,
	})
	if err != nil {
		logger.Fatal("Failed to create Elasticsearch store", zap.Error(err))
	}
	defer es.Close()

	ctx := context.Background()
	readiness := time.Duration(cfg.Elasticsearch.ReadinessTimeout) * time.Second
	if err := es.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Elasticsearch not ready", zap.Error(err))
	}
	logger.Info("Connected to Elasticsearch")

	// Optional read-through cache in front of by-ID reads.
	var store db.Store = es
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled {
		kv, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer kv.Close()
		if err := kv.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		store = doccache.New(es, kv, cfg.Cache.TTL(), metrics.DocCacheTotal, logger)
		cachePinger = kv
		logger.Info("Document cache enabled", zap.Duration("ttl", cfg.Cache.TTL()))
	}

	settings := domain.IndexSettings{Shards: cfg.Elasticsearch.Shards, Replicas: cfg.Elasticsearch.Replicas}
	articleRepo := articlerepo.New(store, cfg.Elasticsearch.IndexPrefix, settings)
	userRepo := userrepo.New(store, cfg.Elasticsearch.IndexPrefix, settings)

	bootstrap := bootstrapuc.New(articleRepo, userRepo)
	if err := bootstrap.EnsureIndices(ctx); err != nil {
		logger.Fatal("Failed to ensure indices", zap.Error(err))
	}
	counts, err := bootstrap.Counts(ctx)
	if err != nil {
		logger.Warn("Failed to count documents", zap.Error(err))
	}
	logger.Info("Indices ready", zap.Strings("indices", bootstrap.IndexNames()), zap.Any("documents", counts))

	articleSvc := articleuc.New(articleRepo)
	userSvc := useruc.New(userRepo)
	healthSvc := healthuc.New(es, cachePinger)

	server := chiTransport.NewServer(articleSvc, userSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.NotFound(chiTransport.NotFound)
	r.MethodNotAllowed(chiTransport.MethodNotAllowed)
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: chiTransport.ParamErrorHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
