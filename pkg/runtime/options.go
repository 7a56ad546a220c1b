package runtime

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Runtime.
type Option func(*config)

type config struct {
	logger         *slog.Logger
	flusher        Flusher
	registerer     prometheus.Registerer
	tracerProvider trace.TracerProvider
	actEnvironment bool
}

func defaultConfig() config {
	return config{
		logger:         slog.Default(),
		flusher:        SyncFlusher{},
		tracerProvider: otel.GetTracerProvider(),
		actEnvironment: true,
	}
}

// WithLogger sets the logger used for warnings such as E010 and E040.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFlusher replaces the flusher that drains queued work when an Act
// scope exits.
func WithFlusher(f Flusher) Option {
	return func(c *config) {
		if f != nil {
			c.flusher = f
		}
	}
}

// WithRegisterer registers the runtime's Prometheus metrics on reg. By
// default metrics are collected but not registered anywhere.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// WithTracerProvider sets the provider for flush spans. Defaults to the
// global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		if tp != nil {
			c.tracerProvider = tp
		}
	}
}

// WithActEnvironment sets the initial act environment flag.
func WithActEnvironment(enabled bool) Option {
	return func(c *config) {
		c.actEnvironment = enabled
	}
}
