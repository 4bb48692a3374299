package http

import (
	"context"
	"log/slog"

	"github.com/Shuaibullattil/daily-motivation/internal/config"
	"github.com/Shuaibullattil/daily-motivation/internal/http/handlers"
	"github.com/Shuaibullattil/daily-motivation/internal/http/middlewares"
	"github.com/Shuaibullattil/daily-motivation/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "daily-motivation"

// Services are the components the routes call into.
type Services struct {
	Profiles   handlers.ProfileStore
	Motivation handlers.MotivationSender

	// Ready backs /readyz; nil means always ready.
	Ready func(ctx context.Context) error

	// optional; /metrics is only mounted when Gatherer is set
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(log *slog.Logger, cfg config.Config, svc Services) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	if svc.Prom != nil {
		r.Use(svc.Prom.GinHandleMiddleware())
	}

	// health
	h := handlers.NewHealthHandler(svc.Ready)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if svc.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(svc.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/docs", handlers.DocsUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	// api
	profileHandler := handlers.NewProfileHandler(svc.Profiles)
	motivationHandler := handlers.NewMotivationHandler(svc.Motivation)

	api := r.Group("/")
	api.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	api.Use(middlewares.RequireJSON())

	api.POST("/create_user", profileHandler.CreateUser)
	api.GET("/get_user", profileHandler.GetUser)
	api.PUT("/update_user", profileHandler.UpdateUser)
	api.GET("/motivation", motivationHandler.Motivation)

	return r
}
