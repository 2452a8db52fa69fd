// Package health aggregates dependency checks into a service status.
package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
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

const checkTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db       DBPinger
	optional map[string]Checker
}

// New creates a Service that always checks the database.
func New(db DBPinger) *Service {
	return &Service{db: db, optional: make(map[string]Checker)}
}

// WithChecker adds an optional component. A nil checker is ignored.
func (s *Service) WithChecker(name string, c Checker) *Service {
	if c != nil {
		s.optional[name] = c
	}
	return s
}

// Check runs all checks concurrently.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]CheckResult, len(s.optional)+1)
	)
	run := func(name string, fn func(context.Context) error) {
		defer wg.Done()
		res := CheckOK
		if err := fn(ctx); err != nil {
			res = CheckError
		}
		mu.Lock()
		checks[name] = res
		mu.Unlock()
	}

	wg.Add(1 + len(s.optional))
	go run("database", s.db.Ping)
	for name, c := range s.optional {
		go run(name, c.HealthCheck)
	}
	wg.Wait()

	status := Healthy
	for name, v := range checks {
		if v != CheckError {
			continue
		}
		if name == "database" {
			status = Unhealthy
			break
		}
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
