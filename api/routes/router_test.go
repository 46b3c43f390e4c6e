package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ridgeline-hq/hoa-backend/pkg/config"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
	"github.com/ridgeline-hq/hoa-backend/pkg/types"
)

func newTestRouter(t *testing.T, registry *prometheus.Registry) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "dev"

	logg := logger.New(logger.Options{
		ServiceName: "router-test",
		Level:       zerolog.ErrorLevel,
		Output:      io.Discard,
	})

	return NewRouter(cfg, logg, nil, registry, Services{})
}

func TestRouterPing(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode ping body: %v", err)
	}
	payload, ok := body.Data.(map[string]any)
	if !ok || payload["status"] != "ok" {
		t.Fatalf("unexpected ping payload %v", body.Data)
	}
}

func TestRouterPingEchoesActorRole(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("X-Actor-Role", "property_manager")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode ping body: %v", err)
	}
	payload := body.Data.(map[string]any)
	if payload["actor_role"] != "property_manager" {
		t.Fatalf("expected actor role to surface, got %v", payload)
	}
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-HOA-Env"); got != "dev" {
		t.Fatalf("expected env header dev, got %q", got)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/does-not-exist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	router := newTestRouter(t, registry)

	// Drive one instrumented request so the counters have samples.
	ping := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	router.ServeHTTP(httptest.NewRecorder(), ping)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("expected request counter in metrics exposition")
	}
}
