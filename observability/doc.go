// Package observability wires OpenTelemetry tracing and metrics into
// contract calls.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("billing"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("billing"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewCallMetrics(observability.Meter("billing"))
//
// A Call ties one span and one set of metric records to a single dispatch:
//
//	ctx, call := observability.StartCall(ctx, tracer, metrics, "GET /users/:id", "GET")
//	defer call.End(ctx, outcome, err)
package observability
