package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// generation outcomes
const (
	GenerationOK    = "ok"
	GenerationError = "error"
	GenerationEmpty = "empty"
)

// email outcomes
const (
	EmailSent   = "sent"
	EmailFailed = "failed"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// profile file
	StoreOpDuration  *prometheus.HistogramVec
	StoreErrorsTotal *prometheus.CounterVec

	GenerationDuration *prometheus.HistogramVec
	GenerationResults  *prometheus.CounterVec

	EmailResults *prometheus.CounterVec
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "motivation",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "motivation",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "motivation",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		StoreOpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "motivation",
				Subsystem: "store",
				Name:      "op_duration_seconds",
				Help:      "Profile file operation latency.",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"op", "status"},
		),
		StoreErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "motivation",
				Subsystem: "store",
				Name:      "errors_total",
				Help:      "Profile file errors by op and class.",
			},
			[]string{"op", "class"},
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "motivation",
				Subsystem: "generation",
				Name:      "duration_seconds",
				Help:      "Text generation call duration by result.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"result"}, // ok|error|empty
		),
		GenerationResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "motivation",
				Subsystem: "generation",
				Name:      "results_total",
				Help:      "Text generation outcomes. error and empty use the fallback message.",
			},
			[]string{"result"},
		),
		EmailResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "motivation",
				Subsystem: "email",
				Name:      "results_total",
				Help:      "Email delivery outcomes.",
			},
			[]string{"result"}, // sent|failed
		),
	}
	reg.MustRegister(
		p.RequestsTotal, p.RequestsDuration, p.InFlight,
		p.StoreOpDuration, p.StoreErrorsTotal,
		p.GenerationDuration, p.GenerationResults,
		p.EmailResults,
	)

	return p
}

func (p *Prom) ObserveGeneration(result string, d time.Duration) {
	if p == nil {
		return
	}
	p.GenerationResults.WithLabelValues(result).Inc()
	p.GenerationDuration.WithLabelValues(result).Observe(d.Seconds())
}

func (p *Prom) ObserveEmail(result string) {
	if p == nil {
		return
	}
	p.EmailResults.WithLabelValues(result).Inc()
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
