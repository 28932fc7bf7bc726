package health

import (
	"context"
	"time"
)

type Status string

const (
	StatusOk       Status = "OK"
	StatusDegraded Status = "DEGRADED"
	StatusError    Status = "ERROR"
)

// Report is the service health snapshot exposed on the public endpoint.
// Cache trouble degrades the report instead of failing it, since the
// service keeps answering from upstream without a cache.
type Report struct {
	Status    Status        `json:"status"`
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	ServerID  string        `json:"server_id"`
	Uptime    string        `json:"uptime"`
	StartedAt time.Time     `json:"started_at"`
	Checks    []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type IHealthUsecase interface {
	Check(ctx context.Context) Report
}
