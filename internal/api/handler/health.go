package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/localtalent/console/internal/core/ports"
)

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
// Checks the session store backend and the upstream API.
type HealthDependenciesHandler struct {
	driver   string
	store    ports.Pinger // nil for backends without a connection
	upstream ports.Pinger
}

func NewHealthDependenciesHandler(driver string, store, upstream ports.Pinger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{driver: driver, store: store, upstream: upstream}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func check(ctx context.Context, p ports.Pinger) dependencyStatus {
	if p == nil {
		return dependencyStatus{Status: "ok"}
	}
	if err := p.Ping(ctx); err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}

// Readiness reports the dependency status. Only the session store decides
// readiness: an unreachable upstream is reported but the console can still
// serve its login view.
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := map[string]dependencyStatus{
		"session_store:" + h.driver: check(ctx, h.store),
	}
	healthy := deps["session_store:"+h.driver].Status == "ok"
	if h.upstream != nil {
		deps["upstream"] = check(ctx, h.upstream)
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
