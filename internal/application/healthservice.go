package application

import (
	"context"
	"log/slog"
	"time"
)

// HealthStatus is the assembled health view served by the API.
type HealthStatus struct {
	Status   string
	Database string
	Uptime   time.Duration
}

// DBPinger reports database liveness.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthService assembles the health view for the HTTP API: process
// uptime plus database reachability.
type HealthService struct {
	db        DBPinger
	startedAt time.Time
}

// NewHealthService creates a new HealthService. Uptime counts from the
// moment of construction.
func NewHealthService(db DBPinger) *HealthService {
	return &HealthService{db: db, startedAt: time.Now()}
}

// Check reports overall health. Status degrades when the database cannot
// be reached; the container healthcheck treats any 200 as live.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(s.startedAt).Round(time.Second),
	}

	if err := s.db.Ping(ctx); err != nil {
		slog.Error("database ping failed", "error", err)
		status.Status = "degraded"
		status.Database = "unreachable"
	}

	return status
}
