package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shuaibullattil/daily-motivation/internal/app"
	"github.com/Shuaibullattil/daily-motivation/internal/config"
	httpx "github.com/Shuaibullattil/daily-motivation/internal/http"
	"github.com/Shuaibullattil/daily-motivation/internal/observability"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	shutdownTracer, err := observability.InitTracer(context.Background(), observability.TracingConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: "daily-motivation",
		Env:         cfg.Env,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	a := app.New(cfg, log)

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, motivation will use the fallback message")
	}
	if cfg.Recipient == "" {
		log.Warn("no recipient configured, set EMAIL or MOTIVATION_RECIPIENT")
	}

	router := httpx.NewRouter(log, cfg, httpx.Services{
		Profiles:   a.Store,
		Motivation: a.Dispatcher,
		Ready:      a.Store.Ping,
		Prom:       a.Prom,
		Gatherer:   a.Registry,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// generation plus an smtp round trip
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "profile_file", a.Store.Path())
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
