// Package tracing sets up OpenTelemetry export for `routematch serve`.
//
// Spans from the resolution middleware are batched and sent to an OTLP/HTTP
// collector. Nothing is set up when tracing is disabled in the
// configuration.
package tracing

import (
	"context"
	"log/slog"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"

	"github.com/vango-dev/routematch/internal/config"
)

// Init creates a tracer provider for cfg. It returns nil when tracing is
// disabled. The exporter does not connect until the first batch is sent.
func Init(ctx context.Context, cfg config.TracingConfig) (*sdktrace.TracerProvider, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg)),
		sdktrace.WithBatcher(exporter),
	), nil
}

// Sampler returns the parent-based ratio sampler cfg selects.
func Sampler(cfg config.TracingConfig) sdktrace.Sampler {
	rate := config.DefaultSampleRatePercentage
	if cfg.SampleRatePercentage != nil {
		rate = *cfg.SampleRatePercentage
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(float64(rate) / 100))
}

// SetupLogging routes OpenTelemetry's internal logs and export errors
// through logger.
func SetupLogging(logger *slog.Logger) {
	otel.SetErrorHandler(&errorHandler{logger: logger})
	otel.SetLogger(logr.FromSlogHandler(logger.Handler()))
}

type errorHandler struct {
	logger *slog.Logger
}

func (e *errorHandler) Handle(err error) {
	e.logger.Warn("tracing export failed", slog.Any("error", err))
}
