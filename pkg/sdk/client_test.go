package esdocs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/esdocs/internal/domain"
)

// fakeCluster answers the few calls New and Health make.
type fakeCluster struct {
	mu      sync.Mutex
	created []string
	exists  map[string]bool
	status  string
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/":
		_, _ = w.Write([]byte(`{"version":{"number":"8.19.0"}}`))
	case r.URL.Path == "/_cluster/health":
		_, _ = w.Write([]byte(`{"status":"` + f.status + `"}`))
	case r.Method == http.MethodHead:
		if !f.exists[strings.TrimPrefix(r.URL.Path, "/")] {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut:
		name := strings.TrimPrefix(r.URL.Path, "/")
		f.created = append(f.created, name)
		f.exists[name] = true
		_, _ = w.Write([]byte(`{"acknowledged":true,"index":"` + name + `"}`))
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newFakeCluster(t *testing.T, status string) (*fakeCluster, string) {
	t.Helper()
	f := &fakeCluster{exists: map[string]bool{}, status: status}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_ClusterNotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(context.Background(),
		WithElasticsearch(srv.URL),
		WithReadinessTimeout(300*time.Millisecond),
	)
	if err == nil {
		t.Fatal("expected readiness error")
	}
	if !strings.Contains(err.Error(), "not ready") {
		t.Errorf("error = %v, want readiness failure", err)
	}
}

func TestNew_CreatesMissingIndices(t *testing.T) {
	f, url := newFakeCluster(t, "green")
	f.exists["docs_users"] = true

	c, err := New(context.Background(), WithElasticsearch(url), WithIndexPrefix("docs"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	f.mu.Lock()
	created := append([]string(nil), f.created...)
	f.mu.Unlock()
	if len(created) != 1 || created[0] != "docs_articles" {
		t.Errorf("created = %v, want [docs_articles]", created)
	}

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	for _, tc := range []struct {
		cluster string
		status  string
		serving bool
	}{
		{"green", "healthy", true},
		{"yellow", "healthy", true},
		{"red", "unhealthy", false},
	} {
		t.Run(tc.cluster, func(t *testing.T) {
			_, url := newFakeCluster(t, tc.cluster)
			c, err := New(context.Background(), WithElasticsearch(url))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer c.Close()

			h := c.Health(context.Background())
			if h.Status != tc.status {
				t.Errorf("Status = %q, want %q", h.Status, tc.status)
			}
			if h.Cluster != tc.cluster {
				t.Errorf("Cluster = %q, want %q", h.Cluster, tc.cluster)
			}
			if h.Serving() != tc.serving {
				t.Errorf("Serving = %v, want %v", h.Serving(), tc.serving)
			}
			if _, ok := h.Checks["cache"]; ok {
				t.Error("cache check reported without WithCache")
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithElasticsearch("http://a:9200", "http://b:9200").apply(cfg)
	if len(cfg.addresses) != 2 || cfg.addresses[1] != "http://b:9200" {
		t.Errorf("addresses = %v", cfg.addresses)
	}

	WithBasicAuth("elastic", "secret").apply(cfg)
	if cfg.username != "elastic" || cfg.password != "secret" {
		t.Errorf("auth = (%q, %q)", cfg.username, cfg.password)
	}

	WithRefresh(RefreshWaitFor).apply(cfg)
	if cfg.refresh != RefreshWaitFor {
		t.Errorf("refresh = %q, want wait_for", cfg.refresh)
	}

	WithIndexPrefix("blog").apply(cfg)
	if cfg.indexPrefix != "blog" {
		t.Errorf("indexPrefix = %q, want blog", cfg.indexPrefix)
	}

	WithIndexSettings(3, 1).apply(cfg)
	if cfg.shards != 3 || cfg.replicas != 1 {
		t.Errorf("settings = (%d, %d), want (3, 1)", cfg.shards, cfg.replicas)
	}

	WithTimeout(5 * time.Second).apply(cfg)
	WithReadinessTimeout(time.Second).apply(cfg)
	if cfg.timeout != 5*time.Second || cfg.readiness != time.Second {
		t.Errorf("timeouts = (%v, %v)", cfg.timeout, cfg.readiness)
	}

	WithCache("localhost:6379", "pass", time.Minute).apply(cfg)
	if len(cfg.cacheAddrs) != 1 || cfg.cacheAddrs[0] != "localhost:6379" || cfg.cacheTTL != time.Minute {
		t.Errorf("cache = (%v, %v)", cfg.cacheAddrs, cfg.cacheTTL)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{}
	c.Close()
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe(context.Background(), "test", "", time.Now(), nil)
	obs.observe(context.Background(), "test", "x", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	ctx := context.Background()
	obs.observe(ctx, "article.get", "a1", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe(ctx, "article.get", "a2", time.Now(), domain.ErrArticleNotFound)
	obs.observe(ctx, "article.get", "a3", time.Now(), errors.New("fail"))

	for status, want := range map[string]float64{"ok": 1, "not_found": 1, "error": 1} {
		got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("article.get", status))
		if got != want {
			t.Errorf("operations{status=%s} = %v, want %v", status, got, want)
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "esdocs_sdk_operations_total" {
			found = true
		}
	}
	if !found {
		t.Error("esdocs_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.metrics.operations != second.metrics.operations {
		t.Error("expected the registered counter to be reused")
	}
}

func TestStatus(t *testing.T) {
	cases := map[string]error{
		"ok":        nil,
		"not_found": domain.ErrUserNotFound,
		"invalid":   domain.ErrValidation,
		"error":     domain.ErrBackendUnavailable,
	}
	for want, err := range cases {
		if got := status(err); got != want {
			t.Errorf("status(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestObserver_WithLogger(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs, err := newObserver(logger, nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe(context.Background(), "user.delete", "u1", time.Now(), errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"operation failed", "op=user.delete", "id=u1", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
