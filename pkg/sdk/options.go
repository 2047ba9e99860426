package esdocs

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Refresh controls when writes become visible to search.
type Refresh string

// Refresh policies.
const (
	RefreshNone      Refresh = "false"
	RefreshWaitFor   Refresh = "wait_for"
	RefreshImmediate Refresh = "true"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addresses []string
	username  string
	password  string
	transport http.RoundTripper
	timeout   time.Duration
	refresh   Refresh

	indexPrefix string
	shards      int
	replicas    int
	readiness   time.Duration

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithElasticsearch sets the cluster node URLs.
func WithElasticsearch(addresses ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addresses = addresses
	})
}

// WithBasicAuth sets the cluster credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithTransport overrides the HTTP transport used to reach the cluster.
func WithTransport(rt http.RoundTripper) Option {
	return optionFunc(func(c *clientConfig) {
		c.transport = rt
	})
}

// WithTimeout sets the per-request timeout. Default: 20s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRefresh sets the write refresh policy. Default: RefreshNone.
func WithRefresh(r Refresh) Option {
	return optionFunc(func(c *clientConfig) {
		c.refresh = r
	})
}

// WithIndexPrefix sets the index name prefix. Default: "app" (app_articles, app_users).
func WithIndexPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexPrefix = prefix
	})
}

// WithIndexSettings sets the shard layout used when indices are created.
// Default: 1 shard, 0 replicas.
func WithIndexSettings(shards, replicas int) Option {
	return optionFunc(func(c *clientConfig) {
		c.shards = shards
		c.replicas = replicas
	})
}

// WithReadinessTimeout bounds the start-up wait for the cluster. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readiness = d
	})
}

// WithCache enables the Redis/Valkey read-through cache for by-ID reads.
func WithCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
