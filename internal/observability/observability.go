package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the knobs for logging, tracing and metrics.
type Config struct {
	ServiceName     string
	Environment     string
	Version         string
	LogLevel        string
	LogFormat       string
	TraceSampleRate float64
	MetricsEnabled  bool
}

// Observability bundles the logger, tracer and metrics registry handed to
// every module.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  Metrics

	tracerProvider *sdktrace.TracerProvider
}

// New builds the observability stack.
func New(cfg Config) (*Observability, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "clubhouse"
	}

	logger := NewLogger(cfg)

	res, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
		attribute.String("deployment.environment", cfg.Environment),
	))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TraceSampleRate))),
	)
	otel.SetTracerProvider(tp)

	registry := prometheus.NewRegistry()
	metrics := NewNoop()
	if cfg.MetricsEnabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = NewPrometheusMetrics(registry)
	}

	return &Observability{
		Logger:         logger,
		Tracer:         tp.Tracer(cfg.ServiceName),
		Registry:       registry,
		Metrics:        metrics,
		tracerProvider: tp,
	}, nil
}

// NewLogger builds the process logger. JSON output is the default; "text" is
// friendlier for local runs.
func NewLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Shutdown flushes the tracer provider.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.tracerProvider == nil {
		return nil
	}
	return errors.Join(o.tracerProvider.ForceFlush(ctx), o.tracerProvider.Shutdown(ctx))
}
