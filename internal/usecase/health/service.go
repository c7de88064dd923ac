package health

import "context"

// Status is the aggregated health of the service.
type Status string

const (
	Healthy   Status = "ok"
	Unhealthy Status = "error"
)

// CheckResult is the outcome of a single component check.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Report carries the aggregate status plus per-component outcomes.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// DBPinger checks document store connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Service runs component health checks. Any failing check turns the
// aggregate status Unhealthy.
type Service struct {
	db DBPinger
}

// New creates a Service.
func New(db DBPinger) *Service {
	return &Service{db: db}
}

// Check probes every component and aggregates the outcomes.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		"database": checkOf(s.db.Ping(ctx)),
	}

	status := Healthy
	for _, c := range checks {
		if c == CheckError {
			status = Unhealthy
			break
		}
	}
	return Report{Status: status, Checks: checks}
}

func checkOf(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
