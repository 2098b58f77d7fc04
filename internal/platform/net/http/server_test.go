package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fakenews/internal/platform/config"
	phttp "fakenews/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_DefaultsAndMux(t *testing.T) {
	t.Setenv("API_PORT", "")
	optCalled := false
	srv := phttp.NewServer(config.New(), func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("expected NewServer option to be called")
	}
	if srv.Addr() != ":5000" {
		t.Fatalf("default addr = %q, want :5000", srv.Addr())
	}
	r := srv.Router()
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("bad response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestNewServer_AddrFromEnv(t *testing.T) {
	t.Setenv("CORE_API_API_PORT", "12345")
	srv := phttp.NewServer(config.New().Prefix("CORE_API_"))
	if srv.Addr() != ":12345" {
		t.Fatalf("expected addr :12345, got %q", srv.Addr())
	}
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	t.Setenv("API_SHUTDOWN_GRACE", "1s")
	srv := phttp.NewServer(config.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_ShutdownReturnsNil(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	sctx, scancel := context.WithTimeout(context.Background(), time.Second)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Shutdown")
	}
}

func TestServer_Run_ReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() { _ = ln.Close() }()

	// the port is already taken, so ListenAndServe fails
	t.Setenv("API_PORT", ln.Addr().String())
	srv := phttp.NewServer(config.New())
	if err := srv.Run(context.Background()); err == nil {
		t.Fatalf("expected Run to return an error for a busy port")
	}
}
