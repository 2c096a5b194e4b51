package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines the interface for health checking components
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Component is a dependency reported by the health endpoints. A failing
// critical component makes the service unhealthy, any other only degraded.
type Component struct {
	Name     string
	Checker  HealthChecker
	Critical bool
}

// HealthHandler handles health check requests
type HealthHandler struct {
	components []Component
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(components ...Component) *HealthHandler {
	return &HealthHandler{components: components}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string, len(h.components)),
	}

	for _, c := range h.components {
		if err := c.Checker.HealthCheck(ctx); err != nil {
			response.Services[c.Name] = "unhealthy: " + err.Error()
			if c.Critical {
				response.Status = "unhealthy"
			} else if response.Status == "healthy" {
				response.Status = "degraded"
			}
			continue
		}
		response.Services[c.Name] = "healthy"
	}

	status := http.StatusOK
	if response.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, response)
}

// Ready handles GET /ready (Kubernetes readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, c := range h.components {
		if !c.Critical {
			continue
		}
		if err := c.Checker.HealthCheck(ctx); err != nil {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// Live handles GET /live (Kubernetes liveness probe)
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}
