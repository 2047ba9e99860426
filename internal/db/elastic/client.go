package elastic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/kailas-cloud/esdocs/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const (
	defaultTimeout = 20 * time.Second
	maxBackoff     = 5 * time.Second
)

// Observer receives the outcome of every backend call.
type Observer func(op string, took time.Duration, err error)

// Config holds connection parameters for an Elasticsearch store.
type Config struct {
	Addresses      []string
	Username       string
	Password       string
	Timeout        time.Duration
	MaxRetries     int
	RetryOnTimeout bool
	Refresh        db.Refresh
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
	Observer  Observer
}

// Store implements db.Store via go-elasticsearch.
type Store struct {
	client    *elasticsearch.Client
	transport http.RoundTripper
	refresh   db.Refresh
	observer  Observer
}

// NewStore creates an Elasticsearch store. No request is sent until first use.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.ResponseHeaderTimeout = timeout
		transport = t
	}

	refresh := cfg.Refresh
	if refresh == "" {
		refresh = db.RefreshNone
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:            cfg.Addresses,
		Username:             cfg.Username,
		Password:             cfg.Password,
		Transport:            transport,
		MaxRetries:           cfg.MaxRetries,
		DisableRetry:         cfg.MaxRetries <= 0,
		EnableRetryOnTimeout: cfg.RetryOnTimeout,
		RetryOnStatus:        []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		RetryBackoff:         retryBackoff,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{
		client:    client,
		transport: transport,
		refresh:   refresh,
		observer:  cfg.Observer,
	}, nil
}

// retryBackoff doubles from 100ms per attempt, capped at maxBackoff.
func retryBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := 100 * time.Millisecond << uint(attempt-1)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) (err error) {
	defer s.track(db.OpPing, time.Now(), &err)

	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return &db.Error{Op: db.OpPing, Status: res.StatusCode, Err: fmt.Errorf("ping failed: %s", res.Status())}
	}
	return nil
}

// ClusterHealth returns the cluster status.
func (s *Store) ClusterHealth(ctx context.Context) (_ db.ClusterStatus, err error) {
	defer s.track(db.OpClusterHealth, time.Now(), &err)

	res, err := s.client.Cluster.Health(s.client.Cluster.Health.WithContext(ctx))
	if err != nil {
		return "", &db.Error{Op: db.OpClusterHealth, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", parseError(db.OpClusterHealth, res)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", &db.Error{Op: db.OpClusterHealth, Status: res.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return db.ClusterStatus(body.Status), nil
}

// Close releases idle connections.
func (s *Store) Close() {
	if t, ok := s.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for elasticsearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) track(op string, start time.Time, errp *error) {
	if s.observer != nil {
		s.observer(op, time.Since(start), *errp)
	}
}
