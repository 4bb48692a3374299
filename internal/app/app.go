// Package app wires configuration into the running components shared by the
// API server and the CLI.
package app

import (
	"log/slog"

	"github.com/Shuaibullattil/daily-motivation/internal/config"
	"github.com/Shuaibullattil/daily-motivation/internal/gemini"
	"github.com/Shuaibullattil/daily-motivation/internal/motivation"
	"github.com/Shuaibullattil/daily-motivation/internal/notifications"
	"github.com/Shuaibullattil/daily-motivation/internal/observability"
	"github.com/Shuaibullattil/daily-motivation/internal/repo/filestore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	Config   config.Config
	Log      *slog.Logger
	Registry *prometheus.Registry
	Prom     *observability.Prom

	Store      *filestore.Store
	Generator  *motivation.Generator
	Notifier   notifications.Notifier
	Dispatcher *motivation.Dispatcher
}

type Option func(*App)

// WithNotifier replaces the SMTP notifier (dry runs, tests).
func WithNotifier(n notifications.Notifier) Option {
	return func(a *App) { a.Notifier = n }
}

func WithTextGenerator(api motivation.TextGenerator) Option {
	return func(a *App) {
		a.Generator = motivation.NewGenerator(api, a.Log, motivation.WithMetrics(a.Prom))
	}
}

func New(cfg config.Config, log *slog.Logger, opts ...Option) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	a := &App{
		Config:   cfg,
		Log:      log,
		Registry: reg,
		Prom:     prom,
		Store:    filestore.New(cfg.ProfileFile, prom),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.Generator == nil {
		api := gemini.New(gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
		a.Generator = motivation.NewGenerator(api, log, motivation.WithMetrics(prom))
	}
	if a.Notifier == nil {
		a.Notifier = notifications.NewSMTPNotifier(notifications.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.Email,
			Password: cfg.EmailPassword,
		}, prom)
	}

	a.Dispatcher = motivation.NewDispatcher(a.Store, a.Generator, a.Notifier, cfg.Recipient, log)
	return a
}
