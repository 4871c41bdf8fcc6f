package handlers

import (
	"context"
	"net/http"
	"time"
)

const version = "1.0.0"

type pinger interface {
	Ping(ctx context.Context) error
}

// Check is the result of one dependency probe.
type Check struct {
	Status  string `json:"status"` // "pass" or "fail"
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status    string           `json:"status"` // "healthy" or "degraded"
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Timestamp string           `json:"timestamp"`
}

type HealthHandler struct {
	postgres pinger
	redis    pinger
}

// NewHealthHandler takes the store pingers. redis may be nil when no cache
// is configured, which is not a failure.
func NewHealthHandler(postgres, redis pinger) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]Check)
	allHealthy := true

	if h.postgres != nil {
		checks["postgres"] = probe(ctx, h.postgres)
	} else {
		checks["postgres"] = Check{Status: "fail", Message: "not configured"}
	}
	if checks["postgres"].Status != "pass" {
		allHealthy = false
	}

	if h.redis != nil {
		checks["redis"] = probe(ctx, h.redis)
		if checks["redis"].Status != "pass" {
			allHealthy = false
		}
	} else {
		checks["redis"] = Check{Status: "pass", Message: "disabled"}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status:    status,
		Version:   version,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func probe(ctx context.Context, p pinger) Check {
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return Check{Status: "fail", Message: "connection failed"}
	}
	return Check{Status: "pass", Latency: time.Since(start).String()}
}
