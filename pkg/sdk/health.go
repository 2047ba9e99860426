package esdocs

import (
	"context"

	healthuc "github.com/kailas-cloud/esdocs/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status  string            // "healthy", "degraded", "unhealthy"
	Cluster string            // "green", "yellow", "red"; empty when unreachable
	Checks  map[string]string // component → "ok"/"error"
}

// Serving reports whether the cluster can serve requests.
func (h HealthStatus) Serving() bool {
	return h.Checks["elasticsearch"] == string(healthuc.CheckOK)
}

// Health checks the cluster and, when enabled, the cache.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:  string(report.Status),
		Cluster: report.Cluster,
		Checks:  checks,
	}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
