package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/pizzaorder/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func serveHealth(t *testing.T, checks httpx.HealthChecks) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler(t *testing.T) {
	down := errors.New("down")

	tests := []struct {
		name       string
		checks     httpx.HealthChecks
		wantCode   int
		wantStatus string
		wantRedis  string
		wantBus    string
	}{
		{
			name:       "all healthy",
			checks:     httpx.HealthChecks{Redis: &stubChecker{}, EventBus: &stubChecker{}},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantRedis:  "ok",
			wantBus:    "ok",
		},
		{
			name:       "redis disabled",
			checks:     httpx.HealthChecks{EventBus: &stubChecker{}},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantRedis:  "disabled",
			wantBus:    "ok",
		},
		{
			name:       "redis down",
			checks:     httpx.HealthChecks{Redis: &stubChecker{err: down}, EventBus: &stubChecker{}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantRedis:  "unreachable",
			wantBus:    "ok",
		},
		{
			name:       "event bus down",
			checks:     httpx.HealthChecks{Redis: &stubChecker{}, EventBus: &stubChecker{err: down}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantRedis:  "ok",
			wantBus:    "unreachable",
		},
		{
			name:       "all down",
			checks:     httpx.HealthChecks{Redis: &stubChecker{err: down}, EventBus: &stubChecker{err: down}},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantRedis:  "unreachable",
			wantBus:    "unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := serveHealth(t, tt.checks)
			if code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, code)
			}
			if resp["status"] != tt.wantStatus || resp["redis"] != tt.wantRedis || resp["event_bus"] != tt.wantBus {
				t.Errorf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	h := httpx.HealthHandler(httpx.HealthChecks{EventBus: &stubChecker{}})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}
