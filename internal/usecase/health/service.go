// Package health aggregates dependency probes into a single report.
package health

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status values for the overall report and individual checks.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDown     = "down"
)

// Check is one dependency's probe outcome.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency"`
}

// Report is the aggregate health payload.
type Report struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Checks  []Check `json:"checks"`
}

type dependency struct {
	name     string
	pinger   Pinger
	critical bool
}

// Service probes registered dependencies.
type Service struct {
	version string
	deps    []dependency
	logger  *zap.Logger
}

// New creates a health service.
func New(version string, logger *zap.Logger) *Service {
	return &Service{version: version, logger: logger}
}

// Register adds a dependency probe. Critical dependencies take the
// whole service down when unreachable; non-critical ones only degrade
// it.
func (s *Service) Register(name string, p Pinger, critical bool) *Service {
	s.deps = append(s.deps, dependency{name: name, pinger: p, critical: critical})
	return s
}

// Check probes every registered dependency and aggregates the outcome.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{Status: StatusOK, Version: s.version}

	for _, dep := range s.deps {
		start := time.Now()
		err := dep.pinger.Ping(ctx)
		check := Check{
			Name:    dep.name,
			Status:  StatusOK,
			Latency: time.Since(start).Round(time.Millisecond).String(),
		}
		if err != nil {
			check.Status = StatusDown
			check.Error = err.Error()
			s.logger.Warn("health check failed",
				zap.String("dependency", dep.name), zap.Error(err))
			if dep.critical {
				report.Status = StatusDown
			} else if report.Status == StatusOK {
				report.Status = StatusDegraded
			}
		}
		report.Checks = append(report.Checks, check)
	}

	return report
}
