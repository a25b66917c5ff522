package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func readiness(t *testing.T, h *HealthDependenciesHandler) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestReadiness_UpstreamDownStillReady(t *testing.T) {
	code, resp := readiness(t, NewHealthDependenciesHandler("file", nil, stubPinger{err: errors.New("dial tcp: refused")}))
	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ready, got %d %+v", code, resp)
	}
	if resp.Dependencies["upstream"].Status != "unhealthy" {
		t.Fatalf("expected upstream reported unhealthy: %+v", resp.Dependencies)
	}
}

func TestReadiness_StoreDown(t *testing.T) {
	code, resp := readiness(t, NewHealthDependenciesHandler("redis", stubPinger{err: errors.New("timeout")}, stubPinger{}))
	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", code, resp)
	}
	if resp.Dependencies["session_store:redis"].Error != "timeout" {
		t.Fatalf("unexpected dependencies: %+v", resp.Dependencies)
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewHealthHandler().Liveness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
