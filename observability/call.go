package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// OutcomeOK marks a call that produced a validated response.
const OutcomeOK = "ok"

// Call tracks one contract call. Either the tracer or the metrics may be nil.
type Call struct {
	Endpoint  string
	Method    string
	StartTime time.Time

	span    trace.Span
	metrics *CallMetrics
}

// StartCall starts a client span named after the endpoint key and records
// the call as in flight.
func StartCall(ctx context.Context, tracer trace.Tracer, metrics *CallMetrics, endpoint, method string) (context.Context, *Call) {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(TracerName)
	}
	ctx, span := tracer.Start(ctx, endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrEndpoint, endpoint),
			attribute.String(AttrHTTPMethod, method),
		),
	)
	if metrics != nil {
		metrics.RecordStart(ctx, endpoint)
	}
	return ctx, &Call{
		Endpoint:  endpoint,
		Method:    method,
		StartTime: time.Now(),
		span:      span,
		metrics:   metrics,
	}
}

// Span returns the call span.
func (c *Call) Span() trace.Span { return c.span }

// SetURL records the built URL.
func (c *Call) SetURL(url string) {
	c.span.SetAttributes(attribute.String(AttrURL, url))
}

// SetStatus records the response status code.
func (c *Call) SetStatus(status int) {
	c.span.SetAttributes(attribute.Int(AttrStatusCode, status))
}

// End finishes the span and records metrics. A non-nil err marks the span
// as failed and counts the outcome as an error.
func (c *Call) End(ctx context.Context, outcome string, err error) {
	duration := c.Duration()
	c.span.SetAttributes(attribute.String(AttrOutcome, outcome))
	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, err.Error())
	}
	c.span.End()

	if c.metrics == nil {
		return
	}
	c.metrics.RecordEnd(ctx, c.Endpoint, c.Method, outcome, duration)
	if err != nil {
		c.metrics.RecordError(ctx, c.Endpoint, outcome)
	}
}

// Duration returns the elapsed time since the call started.
func (c *Call) Duration() time.Duration {
	return time.Since(c.StartTime)
}
