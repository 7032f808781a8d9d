package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the records are served but the backing source is unreachable.
	Degraded Status = "degraded"
	// Unhealthy indicates the records never loaded.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names in a Report.
const (
	CheckRecords = "records"
	CheckSource  = "source"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	records Pinger
	source  Pinger
}

// New creates a Service. source can be nil for sources without a connection.
func New(records, source Pinger) *Service {
	return &Service{records: records, source: source}
}

// Check runs health checks against all components.
// Records are loaded once, so a lost source connection only degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.records.Ping(ctx); err != nil {
		checks[CheckRecords] = CheckError
		status = Unhealthy
	} else {
		checks[CheckRecords] = CheckOK
	}

	if s.source != nil {
		if err := s.source.Ping(ctx); err != nil {
			checks[CheckSource] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks[CheckSource] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
