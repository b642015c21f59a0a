package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/helderdsa/dashboard-controladoria/internal/api"
	"github.com/helderdsa/dashboard-controladoria/internal/config"
)

func newTestServer(t *testing.T, mutate func(*config.AppConfig)) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()
	cfg.Server.DevMode = true
	if mutate != nil {
		mutate(cfg)
	}
	srv, err := NewServer(cfg, "test", nil)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func TestServer_StatusAndCORS(t *testing.T) {
	srv := newTestServer(t, nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("CORS header missing")
	}
	var status api.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status.Version != "test" || status.TaskAPIConfigured || !status.StoreEnabled {
		t.Fatalf("unexpected status: %+v", status)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/status", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight want=204 got=%d", w.Code)
	}
}

func TestServer_TaskAPIConfigured(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.AppConfig) {
		cfg.TaskAPI.BaseURL = "http://127.0.0.1:1"
	})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	var status api.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !status.TaskAPIConfigured {
		t.Fatalf("task api should be reported as configured")
	}
}
