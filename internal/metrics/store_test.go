package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/esdocs/internal/db"
)

func TestObserveElastic(t *testing.T) {
	before := testutil.ToFloat64(ElasticRequestsTotal.WithLabelValues("get", "not_found"))

	ObserveElastic("get", 5*time.Millisecond, &db.Error{Op: "get", Status: 404, Err: db.ErrDocumentNotFound})

	after := testutil.ToFloat64(ElasticRequestsTotal.WithLabelValues("get", "not_found"))
	if after-before != 1 {
		t.Errorf("not_found delta = %v, want 1", after-before)
	}
	if testutil.CollectAndCount(ElasticRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestElasticResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{db.ErrDocumentNotFound, "not_found"},
		{&db.Error{Op: "search", Status: 404, Err: db.ErrIndexNotFound}, "not_found"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range tests {
		if got := elasticResult(tc.err); got != tc.want {
			t.Errorf("elasticResult(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestRegisterStoreMetrics_Idempotent(t *testing.T) {
	RegisterStoreMetrics()
	RegisterStoreMetrics()
}
