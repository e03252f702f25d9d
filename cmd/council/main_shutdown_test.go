package main

import (
	"net/http"
	"os"
	osSignal "os/signal"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/llm-council/internal/application"
	"github.com/eugenenazirov/llm-council/internal/config"
)

// sendSignalOnNotify replaces signal registration with one that delivers SIGTERM
// immediately.
func sendSignalOnNotify(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})

	signalNotify = func(ch chan<- os.Signal, sig ...os.Signal) {
		go func() {
			ch <- syscall.SIGTERM
		}()
	}
}

func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SHUTDOWN_GRACE_PERIOD", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT",
		"IDLE_TIMEOUT", "ENABLE_REQUEST_LOGGING", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestShutdownStopsApplicationServer(t *testing.T) {
	sendSignalOnNotify(t)

	serverCfg := config.ServerConfig{
		Port:              ":0",
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
	}
	logger := zaptest.NewLogger(t)
	app := application.New(config.Resolve(config.MapLookup(nil)), serverCfg, logger)

	called := make(chan struct{}, 1)
	app.Server().RegisterOnShutdown(func() {
		called <- struct{}{}
	})

	shutdown(app.Server(), time.Millisecond, logger)

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatalf("expected server shutdown callback to execute")
	}

	if err := app.Server().ListenAndServe(); err != http.ErrServerClosed {
		t.Fatalf("expected server to be closed, got %v", err)
	}
}

func TestServeRunsUntilSignal(t *testing.T) {
	sendSignalOnNotify(t)
	clearServerEnv(t)

	port := "0"
	done := make(chan error, 1)
	go func() {
		// the listener goroutine may log after the test returns, so zaptest is not usable here
		done <- serve(config.Resolve(config.MapLookup(nil)), &config.CLIOverrides{Port: &port}, zap.NewNop())
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected serve to return after shutdown signal")
	}
}

func TestServeRejectsInvalidServerConfig(t *testing.T) {
	clearServerEnv(t)
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("rate_limit:\n  burst: -3\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := serve(config.Resolve(config.MapLookup(nil)), &config.CLIOverrides{ConfigFile: path}, zaptest.NewLogger(t))
	if err == nil {
		t.Fatalf("expected error for invalid server configuration")
	}
}
