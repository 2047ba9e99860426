package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "healthy"
	// Degraded indicates the cluster serves but an auxiliary component fails.
	Degraded Status = "degraded"
	// Unhealthy indicates the cluster cannot serve requests.
	Unhealthy Status = "unhealthy"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	// Cluster is the raw cluster status ("green", "yellow", "red"), empty when unreachable.
	Cluster string
	Checks  map[string]CheckResult
}

// ClusterHealthy reports whether the search cluster can serve requests.
func (r Report) ClusterHealthy() bool {
	return r.Checks["elasticsearch"] == CheckOK
}

// Service coordinates health checks.
type Service struct {
	cluster ClusterChecker
	cache   CachePinger
}

// New creates a Service. cache can be nil.
func New(cluster ClusterChecker, cache CachePinger) *Service {
	return &Service{cluster: cluster, cache: cache}
}

// Check runs health checks against all components.
// Green and yellow clusters are healthy; red or unreachable ones are not.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	var cluster string

	status, err := s.cluster.ClusterHealth(ctx)
	switch {
	case err != nil:
		checks["elasticsearch"] = CheckError
	case status.Serving():
		cluster = string(status)
		checks["elasticsearch"] = CheckOK
	default:
		cluster = string(status)
		checks["elasticsearch"] = CheckError
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	overall := Healthy
	switch {
	case checks["elasticsearch"] == CheckError:
		overall = Unhealthy
	case checks["cache"] == CheckError:
		overall = Degraded
	}

	return Report{Status: overall, Cluster: cluster, Checks: checks}
}
