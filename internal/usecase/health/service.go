package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
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
	Points int
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	points     PointCounter
	clustering ClusteringProber
}

// New creates a Service. clustering can be nil.
func New(points PointCounter, clustering ClusteringProber) *Service {
	return &Service{points: points, clustering: clustering}
}

// Check runs health checks against all components.
// An empty point set is reported as an error: nothing would ever be drawn.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	n := s.points.Count()
	if n > 0 {
		checks["points"] = CheckOK
	} else {
		checks["points"] = CheckError
	}

	if s.clustering != nil {
		if err := s.clustering.Probe(ctx); err != nil {
			checks["clustering"] = CheckError
		} else {
			checks["clustering"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Points: n, Checks: checks}
}
