package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/esdocs/internal/db"
)

// Backend Prometheus metrics.
var (
	ElasticRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esdocs",
			Name:      "elasticsearch_requests_total",
			Help:      "Total number of Elasticsearch API calls",
		},
		[]string{"op", "result"}, // "ok" / "not_found" / "error"
	)

	ElasticRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "esdocs",
			Name:      "elasticsearch_request_duration_seconds",
			Help:      "Elasticsearch API call duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"op"},
	)

	DocCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esdocs",
			Name:      "doc_cache_total",
			Help:      "Document cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	IngestMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esdocs",
			Name:      "ingest_messages_total",
			Help:      "Kafka ingest messages by outcome",
		},
		[]string{"result"}, // "indexed" / "dead_lettered"
	)
)

var storeMetricsRegistered bool

// RegisterStoreMetrics registers backend metrics. Must be called once from main.
func RegisterStoreMetrics() {
	if storeMetricsRegistered {
		return
	}
	prometheus.MustRegister(ElasticRequestsTotal)
	prometheus.MustRegister(ElasticRequestDuration)
	prometheus.MustRegister(DocCacheTotal)
	prometheus.MustRegister(IngestMessagesTotal)
	storeMetricsRegistered = true
}

// ObserveElastic records one Elasticsearch call. Its signature matches elastic.Observer.
func ObserveElastic(op string, took time.Duration, err error) {
	ElasticRequestDuration.WithLabelValues(op).Observe(took.Seconds())
	ElasticRequestsTotal.WithLabelValues(op, elasticResult(err)).Inc()
}

func elasticResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, db.ErrDocumentNotFound), errors.Is(err, db.ErrIndexNotFound):
		return "not_found"
	default:
		return "error"
	}
}
