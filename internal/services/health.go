package services

import (
	"context"
	"time"
)

// HealthStatus represents the status of a service
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// HealthService handles health check operations
type HealthService struct {
	db    Pinger
	store Pinger
	redis Pinger // optional
}

// NewHealthService creates a new health service. redis may be nil.
func NewHealthService(db, store, redis Pinger) *HealthService {
	return &HealthService{
		db:    db,
		store: store,
		redis: redis,
	}
}

func check(ctx context.Context, p Pinger) HealthStatus {
	if err := p.Ping(ctx); err != nil {
		return HealthStatus{
			Status:    "error",
			Timestamp: time.Now(),
			Details:   err.Error(),
		}
	}
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
	}
}

// CheckOverall checks all dependencies and reports whether every one is healthy.
func (s *HealthService) CheckOverall(ctx context.Context) (map[string]HealthStatus, bool) {
	status := map[string]HealthStatus{
		"database":     check(ctx, s.db),
		"object_store": check(ctx, s.store),
	}
	if s.redis != nil {
		status["redis"] = check(ctx, s.redis)
	}

	healthy := true
	for _, st := range status {
		if st.Status != "ok" {
			healthy = false
		}
	}
	return status, healthy
}
