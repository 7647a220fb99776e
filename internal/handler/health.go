package handler

import (
	"context"
	"net/http"
	"time"

	"retail-backoffice-api/internal/repository"
	"retail-backoffice-api/pkg/response"
)

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	store   repository.Store
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store repository.Store, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Ready handles GET /api/ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	storeStatus := "ok"
	if err := h.store.Ping(ctx); err != nil {
		storeStatus = "unreachable"
	}

	resp := ReadyResponse{
		Ready:     storeStatus == "ok",
		Timestamp: time.Now().UTC(),
		Checks: []Check{
			{Name: "store", Status: storeStatus},
		},
	}

	status := http.StatusOK
	if !resp.Ready {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, resp)
}
