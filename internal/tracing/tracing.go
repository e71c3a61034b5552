package tracing

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup installs a global tracer provider exporting over OTLP/HTTP. The
// returned func flushes pending spans.
func Setup(ctx context.Context, cfg *config.Otel) (func(context.Context) error, error) {

	exporter, err := otlptracehttp.New(ctx, exporterOptions(cfg.ExporterEndpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := NewProvider(cfg, sdktrace.WithBatcher(exporter))

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}

// NewProvider builds a provider sampling cfg.SamplerRatio of new traces and
// following the parent decision otherwise.
func NewProvider(cfg *config.Otel, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName))

	opts = append(opts,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplerRatio))),
	)

	return sdktrace.NewTracerProvider(opts...)
}

func exporterOptions(endpoint string) []otlptracehttp.Option {

	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(u.Host)}

	if u.Path != "" {
		opts = append(opts, otlptracehttp.WithURLPath(u.Path))
	}

	if u.Scheme != "https" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	return opts
}
