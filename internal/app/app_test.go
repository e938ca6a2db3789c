package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/cartcloud/backend/internal/config"
	testhelpers "github.com/cartcloud/backend/internal/test"
	"github.com/cartcloud/backend/internal/worker"
)

func testAppLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:            "127.0.0.1:0",
		ReconcilePollInterval: 50 * time.Millisecond,
		ReconcileBatchSize:    4,
		WorkerPoolSize:        1,
		ShutdownTimeout:       time.Second,
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	cfg := testConfig()
	logger := testAppLogger()
	server := &http.Server{Addr: cfg.RunAddress, Handler: http.NewServeMux()}
	reconciler := worker.NewReconciler(&testhelpers.WorkerFacadeStub{}, cfg.ReconcilePollInterval, cfg.ReconcileBatchSize, cfg.WorkerPoolSize, logger)

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one lifecycle hook, got %d", len(recorder.Hooks))
	}
	hook := recorder.Hooks[0]

	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

func TestLifecycleShutsDownOnServeFailure(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	cfg := testConfig()
	cfg.RunAddress = "invalid-address-no-port"
	logger := testAppLogger()
	server := &http.Server{Addr: cfg.RunAddress, Handler: http.NewServeMux()}
	reconciler := worker.NewReconciler(&testhelpers.WorkerFacadeStub{}, cfg.ReconcilePollInterval, cfg.ReconcileBatchSize, cfg.WorkerPoolSize, logger)
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Worker:     reconciler,
		Config:     cfg,
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer func() { _ = hook.OnStop(context.Background()) }()

	select {
	case <-shutdowner.Called:
	case <-time.After(2 * time.Second):
		t.Fatal("expected shutdown after listen failure")
	}
}

func TestNewHTTPServerUsesConfiguredAddress(t *testing.T) {
	cfg := testConfig()
	cfg.RunAddress = ":9191"

	server := newHTTPServer(serverParams{Config: cfg, Router: nil})
	if server.Addr != ":9191" {
		t.Fatalf("unexpected address %q", server.Addr)
	}
}
