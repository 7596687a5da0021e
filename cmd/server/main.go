package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portal/internal/platform/config"
	"portal/internal/platform/httpserver"
	"portal/internal/platform/logger"
	"portal/internal/platform/metrics"
	"portal/internal/portal/handler"
	"portal/internal/portal/notify"
	"portal/internal/portal/service"
	"portal/internal/portal/store"
	"portal/pkg/platform/httputil"
	"portal/pkg/platform/middleware/recovery"
	"portal/pkg/platform/middleware/requestid"
	"portal/pkg/platform/middleware/requestlog"
	"portal/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the service package.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	m := metrics.New()
	stores := store.NewInMemory()
	if err := store.SeedDemoData(context.Background(), stores); err != nil {
		log.Error("failed to seed demo data", "error", err)
		os.Exit(1)
	}

	dispatcher := notify.NewDispatcher(notify.LogSender{Logger: log}, log, 64)
	defer dispatcher.Close()

	svc, err := service.New(stores,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithNotifier(dispatcher),
	)
	if err != nil {
		log.Error("failed to build portal service", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(recovery.Middleware(log))
	router.Use(requestid.Middleware)
	if cfg.DemoToday.IsZero() {
		router.Use(requesttime.Middleware)
	} else {
		router.Use(requesttime.Pinned(cfg.DemoToday))
	}
	router.Use(requestlog.Middleware(log))
	router.Use(chimiddleware.AllowContentType("application/json"))

	handler.New(svc, log).Register(router)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting portal server", "addr", cfg.Addr, "demo_today", cfg.DemoToday)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("portal server stopped")
}
