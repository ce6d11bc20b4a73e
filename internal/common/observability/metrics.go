package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/otlptranslator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the meter and tracer providers of one process.
// A nil *Observability is valid and records nothing.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	calcCounter    otelmetric.Int64Counter
	calcDuration   otelmetric.Float64Histogram
}

type options struct {
	reader     metric.Reader
	registerer prometheus.Registerer
	processors []sdktrace.SpanProcessor
}

// Option customizes New.
type Option func(*options)

// WithReader replaces the prometheus exporter with the given reader.
func WithReader(r metric.Reader) Option {
	return func(o *options) { o.reader = r }
}

// WithRegisterer registers the prometheus exporter with reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithSpanProcessor attaches a span processor to the tracer provider.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.processors = append(o.processors, sp) }
}

func New(serviceName string, opts ...Option) (*Observability, error) {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	reader := cfg.reader
	if reader == nil {
		// calculations.processed is exported as calculations_processed_total
		exporterOpts := []otelprom.Option{
			otelprom.WithTranslationStrategy(otlptranslator.UnderscoreEscapingWithSuffixes),
		}
		if cfg.registerer != nil {
			exporterOpts = append(exporterOpts, otelprom.WithRegisterer(cfg.registerer))
		}
		exporter, err := otelprom.New(exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		reader = exporter
	}

	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	meterProvider := metric.NewMeterProvider(metric.WithReader(reader), metric.WithResource(res))
	otel.SetMeterProvider(meterProvider)

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	for _, sp := range cfg.processors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}
	tracerProvider := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tracerProvider)

	meter := meterProvider.Meter(serviceName)

	calcCounter, err := meter.Int64Counter(
		"calculations.processed",
		otelmetric.WithDescription("Number of engine calculations processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculation counter: %w", err)
	}

	calcDuration, err := meter.Float64Histogram(
		"calculations.duration",
		otelmetric.WithDescription("Engine calculation duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculation histogram: %w", err)
	}

	return &Observability{
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
		tracer:         tracerProvider.Tracer(serviceName),
		calcCounter:    calcCounter,
		calcDuration:   calcDuration,
	}, nil
}

// StartSpan starts a span named after the operation. Callers must End it.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordCalculation(ctx context.Context, engine, status string) {
	if o == nil || o.calcCounter == nil {
		return
	}
	o.calcCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("engine", engine),
		attribute.String("status", status),
	))
}

func (o *Observability) RecordCalculationDuration(ctx context.Context, engine string, duration time.Duration, status string) {
	if o == nil || o.calcDuration == nil {
		return
	}
	o.calcDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
		attribute.String("engine", engine),
		attribute.String("status", status),
	))
}

// Shutdown flushes both providers.
func (o *Observability) Shutdown() error {
	if o == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var firstErr error
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
