package usecase

import (
	"context"
	"time"

	domainHealth "github.com/pokemcp/pokemcp/domains/health"
	"github.com/pokemcp/pokemcp/pkg/cache"
)

const healthProbeTimeout = 2 * time.Second

type healthService struct {
	service   string
	version   string
	serverID  string
	startedAt time.Time
	provider  cache.Provider
	backend   string
}

func NewHealthService(service, version, serverID string, startedAt time.Time, provider cache.Provider, backend string) domainHealth.IHealthUsecase {
	return &healthService{
		service:   service,
		version:   version,
		serverID:  serverID,
		startedAt: startedAt,
		provider:  provider,
		backend:   backend,
	}
}

func (s *healthService) Check(ctx context.Context) domainHealth.Report {
	report := domainHealth.Report{
		Status:    domainHealth.StatusOk,
		Service:   s.service,
		Version:   s.version,
		ServerID:  s.serverID,
		Uptime:    time.Since(s.startedAt).Truncate(time.Second).String(),
		StartedAt: s.startedAt,
	}

	report.Checks = append(report.Checks, s.checkCache(ctx))

	for _, check := range report.Checks {
		if check.Status != domainHealth.StatusOk {
			report.Status = domainHealth.StatusDegraded
			break
		}
	}

	return report
}

// checkCache probes the cache backend. A broken cache degrades the report
// rather than failing it: lookups still work straight against upstream.
func (s *healthService) checkCache(ctx context.Context) domainHealth.HealthCheck {
	check := domainHealth.HealthCheck{
		Name:   "cache:" + s.backend,
		Status: domainHealth.StatusOk,
	}

	if s.provider == nil {
		if s.backend == "disabled" {
			check.Message = "cache disabled"
			return check
		}
		check.Status = domainHealth.StatusDegraded
		check.Message = "no cache provider configured"
		return check
	}

	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	if err := s.provider.Connect(probeCtx); err != nil {
		check.Status = domainHealth.StatusDegraded
		check.Message = err.Error()
	}
	return check
}
