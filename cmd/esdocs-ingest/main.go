package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esdocs/internal/config"
	"github.com/kailas-cloud/esdocs/internal/db"
	dbElastic "github.com/kailas-cloud/esdocs/internal/db/elastic"
	"github.com/kailas-cloud/esdocs/internal/domain"
	logpkg "github.com/kailas-cloud/esdocs/internal/logger"
	"github.com/kailas-cloud/esdocs/internal/metrics"
	articlerepo "github.com/kailas-cloud/esdocs/internal/repository/article"
	kafkaTransport "github.com/kailas-cloud/esdocs/internal/transport/kafka"
	articleuc "github.com/kailas-cloud/esdocs/internal/usecase/article"
	bootstrapuc "github.com/kailas-cloud/esdocs/internal/usecase/bootstrap"
	"github.com/kailas-cloud/esdocs/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := cfg.ValidateKafka(); err != nil {
		panic("invalid kafka config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{Level: cfg.Logging.Level, Component: "ingest"})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting esdocs ingest worker",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group", cfg.Kafka.GroupID),
		zap.String("dlq_topic", cfg.Kafka.DLQTopic),
	)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := es.WaitForReady(ctx, time.Duration(cfg.Elasticsearch.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Elasticsearch not ready", zap.Error(err))
	}

	settings := domain.IndexSettings{Shards: cfg.Elasticsearch.Shards, Replicas: cfg.Elasticsearch.Replicas}
	articleRepo := articlerepo.New(es, cfg.Elasticsearch.IndexPrefix, settings)
	if err := bootstrapuc.New(articleRepo).EnsureIndices(ctx); err != nil {
		logger.Fatal("Failed to ensure indices", zap.Error(err))
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.Topic,
		GroupID:        cfg.Kafka.GroupID,
		MinBytes:       1e3,
		MaxBytes:       10e6,
		CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond, // 0 = synchronous manual commits
	})
	defer func() { _ = reader.Close() }()

	dlqWriter := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
		Topic:                  cfg.Kafka.DLQTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	defer func() { _ = dlqWriter.Close() }()

	worker := kafkaTransport.New(reader, dlqWriter, articleuc.New(articleRepo), metrics.IngestMessagesTotal, logger).
		WithRetry(cfg.Kafka.MaxAttempts, cfg.Kafka.Backoff())

	logger.Info("Worker started")
	if err := worker.Run(ctx); err != nil {
		// The failed message is uncommitted; a restart redelivers it.
		logger.Error("Worker stopped", zap.Error(err))
		_ = reader.Close()
		_ = dlqWriter.Close()
		es.Close()
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
