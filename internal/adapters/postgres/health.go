package postgres

import "context"

// Pinger is the subset of the pool used for connectivity checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck reports database connectivity to the health registry.
type HealthCheck struct {
	db Pinger
}

// NewHealthCheck creates a health checker backed by the given pool.
func NewHealthCheck(db Pinger) *HealthCheck {
	return &HealthCheck{db: db}
}

// Name returns the health check identifier.
func (h *HealthCheck) Name() string {
	return "postgres"
}

// Check pings the database.
func (h *HealthCheck) Check(ctx context.Context) error {
	return h.db.Ping(ctx)
}
