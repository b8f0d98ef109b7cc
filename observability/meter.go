package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/apicontract/logger"
)

// Metric instrument names.
const (
	MetricCalls        = "apicontract.calls"
	MetricCallDuration = "apicontract.call.duration"
	MetricCallsActive  = "apicontract.calls.active"
	MetricCallErrors   = "apicontract.call.errors"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Environment    string        `mapstructure:"environment"`
	Endpoint       string        `mapstructure:"endpoint"`
	Insecure       bool          `mapstructure:"insecure"`
	Interval       time.Duration `mapstructure:"interval"`
	// Logger receives the initialization record. Nil disables it.
	Logger *logger.Logger `mapstructure:"-"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it globally.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	if config.ServiceName == "" {
		return nil, fmt.Errorf("observability: service name is required")
	}

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	if config.Logger != nil {
		config.Logger.Info("meter initialized", logger.Fields(
			"service", config.ServiceName,
			"endpoint", config.Endpoint,
			"interval", config.Interval.String(),
		))
	}

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// CallMetrics holds the instruments recorded for contract calls.
type CallMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
	errors   metric.Int64Counter
}

// NewCallMetrics creates call instruments on the given meter.
func NewCallMetrics(meter metric.Meter) (*CallMetrics, error) {
	calls, err := meter.Int64Counter(MetricCalls,
		metric.WithDescription("Total number of contract calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCalls, err)
	}

	duration, err := meter.Float64Histogram(MetricCallDuration,
		metric.WithDescription("Duration of contract calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricCallDuration, err)
	}

	active, err := meter.Int64UpDownCounter(MetricCallsActive,
		metric.WithDescription("Number of contract calls in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricCallsActive, err)
	}

	errorTotal, err := meter.Int64Counter(MetricCallErrors,
		metric.WithDescription("Failed contract calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCallErrors, err)
	}

	return &CallMetrics{
		calls:    calls,
		duration: duration,
		active:   active,
		errors:   errorTotal,
	}, nil
}

// RecordStart increments the in-flight call count.
func (m *CallMetrics) RecordStart(ctx context.Context, endpoint string) {
	m.active.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrEndpoint, endpoint)))
}

// RecordEnd decrements in-flight calls and records the finished call.
func (m *CallMetrics) RecordEnd(ctx context.Context, endpoint, method, outcome string, duration time.Duration) {
	base := []attribute.KeyValue{
		attribute.String(AttrEndpoint, endpoint),
		attribute.String(AttrHTTPMethod, method),
	}
	m.active.Add(ctx, -1, metric.WithAttributes(base[0]))
	m.calls.Add(ctx, 1, metric.WithAttributes(append(base, attribute.String(AttrOutcome, outcome))...))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(base...))
}

// RecordError counts a failed call by outcome.
func (m *CallMetrics) RecordError(ctx context.Context, endpoint, outcome string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrEndpoint, endpoint),
		attribute.String(AttrOutcome, outcome),
	))
}
